package cmd

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	networkingv1 "k8s.io/api/networking/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/yaml"

	"github.com/saiyam1814/kubectl-ingress/pkg/scanner"
)

func clusterIngress(namespace, name, host, service string, port int32) *networkingv1.Ingress {
	return &networkingv1.Ingress{
		ObjectMeta: metav1.ObjectMeta{
			Namespace:   namespace,
			Name:        name,
			Annotations: map[string]string{"kubernetes.io/ingress.class": "nginx"},
		},
		Spec: networkingv1.IngressSpec{
			Rules: []networkingv1.IngressRule{{
				Host: host,
				IngressRuleValue: networkingv1.IngressRuleValue{
					HTTP: &networkingv1.HTTPIngressRuleValue{
						Paths: []networkingv1.HTTPIngressPath{{
							Path: "/",
							Backend: networkingv1.IngressBackend{
								Service: &networkingv1.IngressServiceBackend{
									Name: service,
									Port: networkingv1.ServiceBackendPort{Number: port},
								},
							},
						}},
					},
				},
			}},
		},
	}
}

var _ = Describe("list", func() {
	var h *harness

	BeforeEach(func() {
		h = newHarness(
			clusterIngress("prod", "web", "example.com", "web", 80),
			clusterIngress("dev", "api", "api.dev.example.com", "api", 8080),
		)
	})

	It("prints a table for one namespace", func() {
		Expect(h.run("list", "-n", "prod")).To(Equal(0))

		out := h.out.String()
		Expect(out).To(ContainSubstring("NAMESPACE"))
		Expect(out).To(MatchRegexp(`prod\s+web\s+nginx\s+example\.com\s+web:80\s+no`))
		Expect(out).NotTo(ContainSubstring("api.dev.example.com"))
	})

	It("lists every namespace as json", func() {
		Expect(h.run("list", "-A", "-o", "json")).To(Equal(0))

		var infos []scanner.IngressInfo
		Expect(json.Unmarshal(h.out.Bytes(), &infos)).To(Succeed())
		Expect(infos).To(HaveLen(2))
		Expect(infos[0].Namespace).To(Equal("dev"))
		Expect(infos[1].Paths[0].Backend()).To(Equal("web:80"))
	})

	It("prints yaml", func() {
		Expect(h.run("list", "-n", "dev", "-o", "yaml")).To(Equal(0))

		var infos []scanner.IngressInfo
		Expect(yaml.Unmarshal(h.out.Bytes(), &infos)).To(Succeed())
		Expect(infos).To(HaveLen(1))
		Expect(infos[0].Hosts).To(Equal([]string{"api.dev.example.com"}))
	})

	It("reports an empty namespace", func() {
		Expect(h.run("list", "-n", "staging")).To(Equal(0))
		Expect(h.out.String()).To(ContainSubstring("No Ingress resources found."))
	})

	It("rejects an unknown output format", func() {
		Expect(h.run("list", "-o", "xml")).To(Equal(1))
		Expect(h.errOut.String()).To(ContainSubstring(`unknown output format "xml"`))
	})
})

var _ = Describe("edit and version", func() {
	var h *harness

	BeforeEach(func() {
		h = newHarness()
	})

	AfterEach(func() {
		h.inv.AssertExpectations(GinkgoT())
	})

	It("runs kubectl edit for the named ingress", func() {
		h.inv.On("Run", []string{"edit", "ingress", "web", "-n", "prod"}).Return(nil).Once()

		Expect(h.run("edit", "web", "-n", "prod")).To(Equal(0))
	})

	It("needs a name to edit", func() {
		Expect(h.run("edit")).To(Equal(1))
		Expect(h.errOut.String()).To(ContainSubstring("edit needs an ingress name"))
	})

	It("prints the plugin version and asks kubectl for its own", func() {
		h.inv.On("Run", []string{"version", "--client"}).Return(nil).Once()

		Expect(h.run("version")).To(Equal(0))
		Expect(h.out.String()).To(ContainSubstring("kubectl-ingress dev"))
	})
})
