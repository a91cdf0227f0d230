package intent

import (
	"errors"
	"strings"

	"github.com/spf13/pflag"

	"github.com/saiyam1814/kubectl-ingress/pkg/annotations"
	"github.com/saiyam1814/kubectl-ingress/pkg/rule"
)

// Family is one recognized flag with its long and short spelling.
type Family struct {
	Long  string
	Short string
	// Value names the flag argument in usage output. Empty for boolean flags.
	Value string
	Usage string

	apply func(b *builder, value string) error
}

// IsBool reports whether the flag takes no value.
func (f Family) IsBool() bool {
	return f.Value == ""
}

// families are tried in this order for every token.
var families = []Family{
	{
		Long: "help", Short: "h",
		Usage: "Show this help",
		apply: func(*builder, string) error { return pflag.ErrHelp },
	},
	{
		Long: "url", Short: "u", Value: "host[/path]=service:port",
		Usage: "Add a rule routing host and path to a service port",
		apply: func(b *builder, value string) error {
			if _, err := rule.Parse(value); err != nil {
				return err
			}
			b.rules = append(b.rules, value)
			return nil
		},
	},
	{
		Long: "annotate", Short: "a", Value: "key=value",
		Usage: "Add an annotation, split on the last '='",
		apply: func(b *builder, value string) error {
			i := strings.LastIndex(value, "=")
			if i <= 0 {
				return errors.New("annotation must be key=value")
			}
			b.annotations = b.annotations.Set(annotations.Annotation{Key: value[:i], Value: value[i+1:]})
			return nil
		},
	},
	{
		Long: "class", Short: "c", Value: "class",
		Usage: "Set the ingress class annotation",
		apply: func(b *builder, value string) error {
			b.ingressClass = value
			return nil
		},
	},
	{
		Long: "cluster-issuer", Short: "ci", Value: "issuer",
		Usage: "Request a certificate from a cert-manager ClusterIssuer (enables TLS)",
		apply: issuer(annotations.ClusterScope),
	},
	{
		Long: "issuer", Short: "i", Value: "issuer",
		Usage: "Request a certificate from a cert-manager Issuer (enables TLS)",
		apply: issuer(annotations.NamespaceScope),
	},
	{
		Long: "tls", Short: "t",
		Usage: "Add a TLS section for every host",
		apply: func(b *builder, _ string) error {
			b.tls = true
			return nil
		},
	},
}

func issuer(scope annotations.Scope) func(*builder, string) error {
	return func(b *builder, value string) error {
		for _, a := range annotations.IssuerAnnotations(scope, value) {
			b.annotations = b.annotations.Set(a)
		}
		b.tls = true
		return nil
	}
}

// Families returns the recognized flags in matching order.
func Families() []Family {
	return append([]Family(nil), families...)
}

type form int

const (
	noMatch form = iota
	bareForm
	inlineForm
	splitForm
)

// match finds the first family accepting tok. Inline spellings are tried
// before split spellings.
func match(tok string) (*Family, form, string) {
	for i := range families {
		f := &families[i]
		long, short := "--"+f.Long, "-"+f.Short
		if f.IsBool() {
			if tok == long || tok == short {
				return f, bareForm, ""
			}
			continue
		}
		for _, name := range []string{long, short} {
			if v, ok := strings.CutPrefix(tok, name+"="); ok {
				return f, inlineForm, v
			}
		}
		if tok == long || tok == short {
			return f, splitForm, ""
		}
	}
	return nil, noMatch, ""
}

func (b *builder) scan(args []string) error {
	for i := 0; i < len(args); i++ {
		tok := args[i]
		f, fm, value := match(tok)
		switch fm {
		case noMatch:
			b.passthrough = append(b.passthrough, tok)
			continue
		case splitForm:
			if i+1 >= len(args) {
				return &FlagError{Token: tok, Err: ErrMissingValue}
			}
			i++
			value = args[i]
			tok = tok + " " + value
		}
		if err := f.apply(b, value); err != nil {
			if errors.Is(err, pflag.ErrHelp) {
				return err
			}
			return &FlagError{Token: tok, Err: err}
		}
	}
	return nil
}

// ParseFlags scans the arguments that follow the ingress name.
//
// pflag.ErrHelp is returned as soon as a help flag is seen.
func ParseFlags(name string, args []string) (Intent, error) {
	b := &builder{name: name}
	if err := b.scan(args); err != nil {
		return Intent{}, err
	}
	return b.build(), nil
}

// Parse reads the ingress name from args[0] and the flags after it.
func Parse(args []string) (Intent, error) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		b := &builder{}
		if err := b.scan(args); errors.Is(err, pflag.ErrHelp) {
			return Intent{}, err
		}
		return Intent{}, ErrMissingResourceName
	}
	return ParseFlags(args[0], args[1:])
}
