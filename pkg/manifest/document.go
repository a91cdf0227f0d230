package manifest

import (
	networkingv1beta1 "k8s.io/api/networking/v1beta1"

	"github.com/saiyam1814/kubectl-ingress/pkg/annotations"
	"github.com/saiyam1814/kubectl-ingress/pkg/rule"
)

const kindIngress = "Ingress"

// APIVersion is the Ingress API whose backends are serviceName/servicePort.
var APIVersion = networkingv1beta1.SchemeGroupVersion.String()

// TLSEntry is one spec.tls item.
type TLSEntry struct {
	Hosts      []string `json:"hosts" yaml:"hosts"`
	SecretName string   `json:"secretName" yaml:"secretName"`
}

// Document is an assembled Ingress manifest. It is not modified after
// Assemble returns; accessors hand out copies.
type Document struct {
	name        string
	annotations annotations.List
	rules       []rule.Rule
	tls         []TLSEntry
}

func (d *Document) APIVersion() string { return APIVersion }
func (d *Document) Kind() string       { return kindIngress }
func (d *Document) Name() string       { return d.name }

func (d *Document) Annotations() annotations.List {
	return d.annotations.Clone()
}

func (d *Document) Rules() []rule.Rule {
	return append([]rule.Rule(nil), d.rules...)
}

func (d *Document) TLS() []TLSEntry {
	out := make([]TLSEntry, 0, len(d.tls))
	for _, t := range d.tls {
		out = append(out, TLSEntry{Hosts: append([]string(nil), t.Hosts...), SecretName: t.SecretName})
	}
	return out
}

// Hosts returns the host of every rule in rule order, duplicates included.
func (d *Document) Hosts() []string {
	hosts := make([]string, 0, len(d.rules))
	for _, r := range d.rules {
		hosts = append(hosts, r.Host)
	}
	return hosts
}
