package annotations

const (
	// IngressClassKey selects the ingress controller.
	IngressClassKey = "kubernetes.io/ingress.class"

	legacyClusterIssuerKey = "certmanager.k8s.io/cluster-issuer"
	clusterIssuerKey       = "cert-manager.io/cluster-issuer"
	legacyIssuerKey        = "certmanager.k8s.io/issuer"
	issuerKey              = "cert-manager.io/issuer"
)

// Scope tells which kind of cert-manager issuer an annotation points at.
type Scope string

const (
	ClusterScope   Scope = "cluster"
	NamespaceScope Scope = "namespace"
)

// IssuerKeyDef describes one issuer annotation key understood by cert-manager.
type IssuerKeyDef struct {
	Key   string
	Scope Scope
}

// IssuerKeys lists the issuer annotation keys in emission order: within a
// scope, the legacy key comes first.
var IssuerKeys = []IssuerKeyDef{
	{Key: legacyClusterIssuerKey, Scope: ClusterScope},
	{Key: clusterIssuerKey, Scope: ClusterScope},
	{Key: legacyIssuerKey, Scope: NamespaceScope},
	{Key: issuerKey, Scope: NamespaceScope},
}

// Annotation is one metadata.annotations entry.
type Annotation struct {
	Key    string
	Value  string
	Quoted bool // rendered double-quoted, other values are written verbatim
}

// List is an insertion-ordered set of annotations.
type List []Annotation

// Set stores value under key. An existing key keeps its position and takes
// the new value.
func (l List) Set(a Annotation) List {
	for i := range l {
		if l[i].Key == a.Key {
			l[i] = a
			return l
		}
	}
	return append(l, a)
}

// Keys returns the keys in order.
func (l List) Keys() []string {
	keys := make([]string, 0, len(l))
	for _, a := range l {
		keys = append(keys, a.Key)
	}
	return keys
}

// Clone returns a copy that does not share storage with l.
func (l List) Clone() List {
	if l == nil {
		return nil
	}
	return append(make(List, 0, len(l)), l...)
}

// IssuerAnnotations returns the annotations that point cert-manager at
// issuer, one per known key of the given scope, legacy key first.
func IssuerAnnotations(scope Scope, issuer string) []Annotation {
	var out []Annotation
	for _, def := range IssuerKeys {
		if def.Scope != scope {
			continue
		}
		out = append(out, Annotation{Key: def.Key, Value: issuer})
	}
	return out
}

// Derive returns the final annotation set: the collected annotations followed
// by the ingress class annotation when ingressClass is set. A class key that
// was collected earlier is moved to the end.
func Derive(collected List, ingressClass string) List {
	if ingressClass == "" {
		return collected.Clone()
	}
	out := make(List, 0, len(collected)+1)
	for _, a := range collected {
		if a.Key != IngressClassKey {
			out = append(out, a)
		}
	}
	return append(out, Annotation{Key: IngressClassKey, Value: ingressClass, Quoted: true})
}
