package manifest

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Render returns the manifest as YAML. Field order is fixed:
// apiVersion, kind, metadata (name, annotations), spec (rules, tls).
func (d *Document) Render() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("rendering ingress %s: %w", d.name, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("rendering ingress %s: %w", d.name, err)
	}
	return buf.Bytes(), nil
}

// MarshalYAML implements yaml.Marshaler.
func (d *Document) MarshalYAML() (interface{}, error) {
	return d.node(), nil
}

func (d *Document) node() *yaml.Node {
	metadata := mapping(str("name"), str(d.name))
	if len(d.annotations) > 0 {
		var kv []*yaml.Node
		for _, a := range d.annotations {
			value := verbatim(a.Value)
			if a.Quoted {
				value = quoted(a.Value)
			}
			kv = append(kv, str(a.Key), value)
		}
		metadata.Content = append(metadata.Content, str("annotations"), mapping(kv...))
	}

	var rules []*yaml.Node
	for _, r := range d.rules {
		path := mapping(
			str("path"), str(r.HTTPPath()),
			str("backend"), mapping(
				str("serviceName"), str(r.ServiceName),
				str("servicePort"), verbatim(r.ServicePort),
			),
		)
		rules = append(rules, mapping(
			str("host"), str(r.Host),
			str("http"), mapping(str("paths"), sequence(path)),
		))
	}
	spec := mapping(str("rules"), sequence(rules...))

	if len(d.tls) > 0 {
		var entries []*yaml.Node
		for _, t := range d.tls {
			var hosts []*yaml.Node
			for _, h := range t.Hosts {
				hosts = append(hosts, str(h))
			}
			entries = append(entries, mapping(
				str("hosts"), sequence(hosts...),
				str("secretName"), str(t.SecretName),
			))
		}
		spec.Content = append(spec.Content, str("tls"), sequence(entries...))
	}

	return mapping(
		str("apiVersion"), str(APIVersion),
		str("kind"), str(kindIngress),
		str("metadata"), metadata,
		str("spec"), spec,
	)
}

// str is a string scalar; the encoder quotes it when it would read back as
// another type.
func str(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

// verbatim is written as typed by the user. Empty values fall back to str
// so they do not read back as null. Values such as false or 1 come out as
// bools or ints, which the API server rejects for annotations.
func verbatim(v string) *yaml.Node {
	if v == "" {
		return str(v)
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Value: v}
}

func quoted(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Style: yaml.DoubleQuotedStyle, Value: v}
}

func mapping(kv ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Content: kv}
}

func sequence(items ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Content: items}
}
