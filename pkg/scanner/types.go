package scanner

// IngressInfo holds the listed data for a single Ingress resource.
type IngressInfo struct {
	Namespace    string            `json:"namespace"`
	Name         string            `json:"name"`
	IngressClass string            `json:"ingressClass,omitempty"`
	Hosts        []string          `json:"hosts"`
	Paths        []PathInfo        `json:"paths"`
	TLSEnabled   bool              `json:"tlsEnabled"`
	TLSSecrets   []string          `json:"tlsSecrets,omitempty"`
	Annotations  map[string]string `json:"annotations,omitempty"` // without bookkeeping annotations
}

// PathInfo describes a single path rule in an Ingress.
type PathInfo struct {
	Host        string `json:"host"`
	Path        string `json:"path"`
	ServiceName string `json:"serviceName"`
	ServicePort string `json:"servicePort"`
}

// Backend formats the path target as service:port.
func (p PathInfo) Backend() string {
	return p.ServiceName + ":" + p.ServicePort
}
