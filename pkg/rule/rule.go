package rule

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFormat is returned when an expression does not have the shape
// host[/path]=service:port.
var ErrInvalidFormat = errors.New("invalid rule format, expected host[/path]=service:port")

// Rule is one decomposed --url expression.
type Rule struct {
	Host        string
	Path        string // without the leading "/", may be empty
	ServiceName string
	ServicePort string
}

// HTTPPath returns the ingress path for the rule. An empty path is the root.
func (r Rule) HTTPPath() string {
	return "/" + r.Path
}

// Parse splits expr into host, path, service name and service port.
//
// The expression must hold exactly one "=". The url part is split at its
// first "/", the endpoint part at its last ":" so that only the final
// segment is taken as the port.
func Parse(expr string) (Rule, error) {
	if strings.Count(expr, "=") != 1 {
		return Rule{}, invalid(expr)
	}
	urlPart, endpoint, _ := strings.Cut(expr, "=")

	host, path, _ := strings.Cut(urlPart, "/")

	i := strings.LastIndex(endpoint, ":")
	if i < 0 {
		return Rule{}, invalid(expr)
	}
	r := Rule{
		Host:        host,
		Path:        path,
		ServiceName: endpoint[:i],
		ServicePort: endpoint[i+1:],
	}
	if r.Host == "" || r.ServiceName == "" || r.ServicePort == "" {
		return Rule{}, invalid(expr)
	}
	return r, nil
}

// ParseAll decomposes every expression, keeping their order.
func ParseAll(exprs []string) ([]Rule, error) {
	rules := make([]Rule, 0, len(exprs))
	for _, expr := range exprs {
		r, err := Parse(expr)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, nil
}

func invalid(expr string) error {
	return fmt.Errorf("%w: %q", ErrInvalidFormat, expr)
}
