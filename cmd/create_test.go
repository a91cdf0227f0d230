package cmd

import (
	"bytes"
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/mock"
	"gopkg.in/yaml.v3"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/cli-runtime/pkg/genericiooptions"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/saiyam1814/kubectl-ingress/pkg/config"
	"github.com/saiyam1814/kubectl-ingress/pkg/invoker"
	"github.com/saiyam1814/kubectl-ingress/pkg/scanner"
	"github.com/saiyam1814/kubectl-ingress/pkg/testutil/mockinvoker"
)

type renderedIngress struct {
	APIVersion string `yaml:"apiVersion"`
	Kind       string `yaml:"kind"`
	Metadata   struct {
		Name        string            `yaml:"name"`
		Annotations map[string]string `yaml:"annotations"`
	} `yaml:"metadata"`
	Spec struct {
		Rules []struct {
			Host string `yaml:"host"`
			HTTP struct {
				Paths []struct {
					Path    string `yaml:"path"`
					Backend struct {
						ServiceName string `yaml:"serviceName"`
						ServicePort string `yaml:"servicePort"`
					} `yaml:"backend"`
				} `yaml:"paths"`
			} `yaml:"http"`
		} `yaml:"rules"`
		TLS []struct {
			Hosts      []string `yaml:"hosts"`
			SecretName string   `yaml:"secretName"`
		} `yaml:"tls"`
	} `yaml:"spec"`
}

type harness struct {
	opts   *options
	inv    *mockinvoker.Invoker
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

func newHarness(objects ...runtime.Object) *harness {
	streams, _, out, errOut := genericiooptions.NewTestIOStreams()
	h := &harness{
		opts:   newOptions(config.Config{}, streams),
		inv:    mockinvoker.New(),
		out:    out,
		errOut: errOut,
	}
	h.opts.newInvoker = func(*options) invoker.Invoker { return h.inv }
	h.opts.newScanner = func(*options) (*scanner.Scanner, error) {
		return scanner.NewForClient(fake.NewSimpleClientset(objects...)), nil
	}
	return h
}

func (h *harness) run(args ...string) int {
	return run(context.Background(), h.opts, args)
}

// expectSubmit records the manifest and passthrough args of the next Submit.
func (h *harness) expectSubmit(verb invoker.Verb, result error) (*renderedIngress, *[]string) {
	ing := &renderedIngress{}
	var passthrough []string
	h.inv.On("Submit", verb, mock.Anything, mock.Anything).Return(result).Run(func(args mock.Arguments) {
		Expect(yaml.Unmarshal([]byte(args.String(1)), ing)).To(Succeed())
		passthrough = args.Get(2).([]string)
	}).Once()
	return ing, &passthrough
}

var _ = Describe("create and apply", func() {
	var h *harness

	BeforeEach(func() {
		h = newHarness()
	})

	AfterEach(func() {
		h.inv.AssertExpectations(GinkgoT())
	})

	It("creates a single-rule ingress", func() {
		ing, passthrough := h.expectSubmit(invoker.Create, nil)

		Expect(h.run("create", "web", "--url=example.com=web:80")).To(Equal(0))

		Expect(ing.APIVersion).To(Equal("networking.k8s.io/v1beta1"))
		Expect(ing.Kind).To(Equal("Ingress"))
		Expect(ing.Metadata.Name).To(Equal("web"))
		Expect(ing.Metadata.Annotations).To(BeEmpty())
		Expect(ing.Spec.Rules).To(HaveLen(1))
		Expect(ing.Spec.Rules[0].Host).To(Equal("example.com"))
		Expect(ing.Spec.Rules[0].HTTP.Paths).To(HaveLen(1))
		path := ing.Spec.Rules[0].HTTP.Paths[0]
		Expect(path.Path).To(Equal("/"))
		Expect(path.Backend.ServiceName).To(Equal("web"))
		Expect(path.Backend.ServicePort).To(Equal("80"))
		Expect(ing.Spec.TLS).To(BeEmpty())
		Expect(*passthrough).To(BeEmpty())
	})

	It("adds a tls entry per host", func() {
		ing, _ := h.expectSubmit(invoker.Create, nil)

		Expect(h.run("create", "web-tls", "-u", "example.com=web:80", "--tls")).To(Equal(0))

		Expect(ing.Spec.Rules).To(HaveLen(1))
		Expect(ing.Spec.TLS).To(HaveLen(1))
		Expect(ing.Spec.TLS[0].Hosts).To(Equal([]string{"example.com"}))
		Expect(ing.Spec.TLS[0].SecretName).To(Equal("example.com-tls"))
	})

	It("keeps rules in the order given", func() {
		ing, _ := h.expectSubmit(invoker.Create, nil)

		Expect(h.run("create", "sites", "-u", "a.com=web:80", "-u", "b.com/api=app:8080")).To(Equal(0))

		Expect(ing.Spec.Rules).To(HaveLen(2))
		Expect(ing.Spec.Rules[0].Host).To(Equal("a.com"))
		Expect(ing.Spec.Rules[0].HTTP.Paths[0].Path).To(Equal("/"))
		Expect(ing.Spec.Rules[1].Host).To(Equal("b.com"))
		Expect(ing.Spec.Rules[1].HTTP.Paths[0].Path).To(Equal("/api"))
		Expect(ing.Spec.Rules[1].HTTP.Paths[0].Backend.ServiceName).To(Equal("app"))
		Expect(ing.Spec.Rules[1].HTTP.Paths[0].Backend.ServicePort).To(Equal("8080"))
	})

	It("applies with issuer annotations and passes unknown flags through", func() {
		ing, passthrough := h.expectSubmit(invoker.Apply, nil)

		code := h.run("apply", "web", "-n", "prod", "-u", "example.com=web:80", "-ci", "letsencrypt", "--class=nginx", "--dry-run=client")
		Expect(code).To(Equal(0))

		Expect(ing.Metadata.Annotations).To(Equal(map[string]string{
			"certmanager.k8s.io/cluster-issuer": "letsencrypt",
			"cert-manager.io/cluster-issuer":    "letsencrypt",
			"kubernetes.io/ingress.class":       "nginx",
		}))
		Expect(ing.Spec.TLS).To(HaveLen(1))
		Expect(*passthrough).To(Equal([]string{"-n", "prod", "--dry-run=client"}))
	})

	It("propagates the kubectl exit status", func() {
		h.expectSubmit(invoker.Create, &invoker.ExitError{Code: 3})

		Expect(h.run("create", "web", "-u", "example.com=web:80")).To(Equal(3))
		Expect(h.errOut.String()).To(BeEmpty())
	})

	It("reports other submit failures with status 1", func() {
		h.expectSubmit(invoker.Apply, context.DeadlineExceeded)

		Expect(h.run("apply", "web", "-u", "example.com=web:80")).To(Equal(1))
		Expect(h.errOut.String()).To(ContainSubstring("error: context deadline exceeded"))
		Expect(h.errOut.String()).NotTo(ContainSubstring("Usage:"))
	})

	DescribeTable("rejects invalid invocations without calling kubectl",
		func(args []string, message string) {
			Expect(h.run(args...)).To(Equal(1))
			Expect(h.errOut.String()).To(HavePrefix("error: "))
			Expect(h.errOut.String()).To(ContainSubstring(message))
			Expect(h.errOut.String()).To(ContainSubstring("Usage:"))
			h.inv.AssertNotCalled(GinkgoT(), "Submit", mock.Anything, mock.Anything, mock.Anything)
		},
		Entry("missing name", []string{"create"}, "missing ingress name"),
		Entry("flag in place of the name", []string{"apply", "-u", "a.com=web:80"}, "missing ingress name"),
		Entry("no rules", []string{"create", "web", "--tls"}, "no rules defined"),
		Entry("malformed rule", []string{"create", "web", "--url=badformat"}, "--url=badformat"),
		Entry("rule without value", []string{"create", "web", "-u"}, "flag needs a value"),
		Entry("annotation without key", []string{"apply", "web", "-u", "a.com=web:80", "-a", "=x"}, "-a =x"),
	)

	It("prints usage for --help and exits 0", func() {
		Expect(h.run("create", "web", "-u", "a.com=web:80", "--help")).To(Equal(0))

		Expect(h.out.String()).To(ContainSubstring("Usage:"))
		Expect(h.out.String()).To(ContainSubstring("-ci, --cluster-issuer issuer"))
		Expect(h.out.String()).To(ContainSubstring("kubectl ingress create|apply NAME"))
		h.inv.AssertNotCalled(GinkgoT(), "Submit", mock.Anything, mock.Anything, mock.Anything)
	})

	It("prints usage for --help even without a name", func() {
		Expect(h.run("apply", "-h")).To(Equal(0))
		Expect(h.out.String()).To(ContainSubstring("Usage:"))
	})

	It("renders byte-identical manifests for identical arguments", func() {
		var manifests []string
		h.inv.On("Submit", invoker.Create, mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
			manifests = append(manifests, args.String(1))
		}).Twice()

		args := []string{"create", "web", "-a", "x=1", "-a", "y=2", "--class", "c", "-u", "a.com=web:80"}
		Expect(h.run(args...)).To(Equal(0))
		Expect(newHarnessWith(h.inv).run(args...)).To(Equal(0))

		Expect(manifests).To(HaveLen(2))
		Expect(manifests[0]).To(Equal(manifests[1]))
		Expect(manifests[0]).To(ContainSubstring("    x: 1\n    y: 2\n    kubernetes.io/ingress.class: \"c\"\n"))
	})
})

var _ = Describe("root", func() {
	It("prints usage when no verb is given", func() {
		h := newHarness()
		Expect(h.run()).To(Equal(0))
		Expect(h.out.String()).To(ContainSubstring("Usage:"))
		Expect(h.out.String()).To(ContainSubstring("kubectl ingress list"))
	})

	It("fails on an unknown verb", func() {
		h := newHarness()
		Expect(h.run("delete", "web")).To(Equal(1))
		Expect(h.errOut.String()).To(ContainSubstring("unknown command"))
	})
})

// newHarnessWith returns a fresh harness sharing inv.
func newHarnessWith(inv *mockinvoker.Invoker) *harness {
	h := newHarness()
	h.inv = inv
	return h
}
