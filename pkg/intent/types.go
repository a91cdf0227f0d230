package intent

import "github.com/saiyam1814/kubectl-ingress/pkg/annotations"

// Intent is the parsed form of one create/apply invocation.
type Intent struct {
	Name         string
	Rules        []string
	Annotations  annotations.List
	IngressClass string
	TLS          bool
	Passthrough  []string
}

// builder accumulates state while the argument list is scanned.
type builder struct {
	name         string
	rules        []string
	annotations  annotations.List
	ingressClass string
	tls          bool
	passthrough  []string
}

func (b *builder) build() Intent {
	return Intent{
		Name:         b.name,
		Rules:        append([]string(nil), b.rules...),
		Annotations:  b.annotations.Clone(),
		IngressClass: b.ingressClass,
		TLS:          b.tls,
		Passthrough:  append([]string(nil), b.passthrough...),
	}
}
