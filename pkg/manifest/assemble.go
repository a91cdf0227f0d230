package manifest

import (
	"errors"

	"github.com/saiyam1814/kubectl-ingress/pkg/annotations"
	"github.com/saiyam1814/kubectl-ingress/pkg/intent"
	"github.com/saiyam1814/kubectl-ingress/pkg/rule"
)

var (
	// ErrNoRules is returned when there is nothing to route.
	ErrNoRules = errors.New("no rules defined, add at least one --url")
	// ErrNoName is returned when the ingress has no name.
	ErrNoName = errors.New("ingress name is empty")
)

// Spec is the input of Assemble.
type Spec struct {
	Name        string
	Rules       []rule.Rule
	Annotations annotations.List
	TLS         bool
}

// Assemble builds the manifest for spec. Rules and TLS entries keep the
// order of spec.Rules; a host used by several rules gets several TLS entries.
func Assemble(spec Spec) (*Document, error) {
	if len(spec.Rules) == 0 {
		return nil, ErrNoRules
	}
	if spec.Name == "" {
		return nil, ErrNoName
	}

	d := &Document{
		name:        spec.Name,
		annotations: spec.Annotations.Clone(),
		rules:       append([]rule.Rule(nil), spec.Rules...),
	}

	if spec.TLS {
		for _, host := range d.Hosts() {
			d.tls = append(d.tls, TLSEntry{
				Hosts:      []string{host},
				SecretName: host + "-tls",
			})
		}
	}

	return d, nil
}

// Compile turns a parsed invocation into a manifest.
func Compile(in intent.Intent) (*Document, error) {
	if len(in.Rules) == 0 {
		return nil, ErrNoRules
	}
	rules, err := rule.ParseAll(in.Rules)
	if err != nil {
		return nil, err
	}
	return Assemble(Spec{
		Name:        in.Name,
		Rules:       rules,
		Annotations: annotations.Derive(in.Annotations, in.IngressClass),
		TLS:         in.TLS,
	})
}
