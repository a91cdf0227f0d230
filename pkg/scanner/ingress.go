package scanner

import (
	"context"
	"sort"
	"strconv"
	"strings"

	networkingv1 "k8s.io/api/networking/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/saiyam1814/kubectl-ingress/pkg/annotations"
)

// bookkeepingPrefixes are system-written annotation prefixes that are
// hidden from listings. kubectl.kubernetes.io/ covers the
// last-applied-configuration written by create --save-config.
var bookkeepingPrefixes = []string{
	"kubectl.kubernetes.io/",
	"argocd.argoproj.io/",
	"meta.helm.sh/",
}

// List returns the ingresses in namespace ("" for all namespaces), sorted by
// namespace and name.
func (s *Scanner) List(ctx context.Context, namespace string) ([]IngressInfo, error) {
	list, err := s.client.NetworkingV1().Ingresses(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, err
	}

	infos := make([]IngressInfo, 0, len(list.Items))
	for _, ing := range list.Items {
		infos = append(infos, parseIngress(ing))
	}

	// Sort for deterministic output
	sort.Slice(infos, func(i, j int) bool {
		if infos[i].Namespace != infos[j].Namespace {
			return infos[i].Namespace < infos[j].Namespace
		}
		return infos[i].Name < infos[j].Name
	})

	return infos, nil
}

func parseIngress(ing networkingv1.Ingress) IngressInfo {
	info := IngressInfo{
		Namespace: ing.Namespace,
		Name:      ing.Name,
	}

	for k, v := range ing.Annotations {
		if isBookkeeping(k) {
			continue
		}
		if info.Annotations == nil {
			info.Annotations = make(map[string]string)
		}
		info.Annotations[k] = v
	}

	// IngressClass
	if ing.Spec.IngressClassName != nil {
		info.IngressClass = *ing.Spec.IngressClassName
	} else if cls, ok := ing.Annotations[annotations.IngressClassKey]; ok {
		info.IngressClass = cls
	}

	// TLS
	if len(ing.Spec.TLS) > 0 {
		info.TLSEnabled = true
		for _, tls := range ing.Spec.TLS {
			if tls.SecretName != "" {
				info.TLSSecrets = append(info.TLSSecrets, tls.SecretName)
			}
		}
	}

	// Hosts and paths, in rule order
	hostSet := make(map[string]bool)
	for _, rule := range ing.Spec.Rules {
		if rule.Host != "" && !hostSet[rule.Host] {
			hostSet[rule.Host] = true
			info.Hosts = append(info.Hosts, rule.Host)
		}
		if rule.HTTP == nil {
			continue
		}
		for _, path := range rule.HTTP.Paths {
			pi := PathInfo{
				Host: rule.Host,
				Path: path.Path,
			}
			if svc := path.Backend.Service; svc != nil {
				pi.ServiceName = svc.Name
				if svc.Port.Name != "" {
					pi.ServicePort = svc.Port.Name
				} else {
					pi.ServicePort = strconv.Itoa(int(svc.Port.Number))
				}
			}
			info.Paths = append(info.Paths, pi)
		}
	}

	return info
}

func isBookkeeping(key string) bool {
	for _, prefix := range bookkeepingPrefixes {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}
