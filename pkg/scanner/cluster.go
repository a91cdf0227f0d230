package scanner

import (
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
)

// Scanner lists Ingress resources from a cluster.
type Scanner struct {
	client kubernetes.Interface
}

// NewScanner creates a Scanner connected to the Kubernetes cluster. Empty
// arguments fall back to the kubectl defaults ($KUBECONFIG, ~/.kube/config,
// current-context).
func NewScanner(kubeconfigPath, context string) (*Scanner, error) {
	loadingRules := clientcmd.NewDefaultClientConfigLoadingRules()
	if kubeconfigPath != "" {
		loadingRules.ExplicitPath = kubeconfigPath
	}
	configOverrides := &clientcmd.ConfigOverrides{}
	if context != "" {
		configOverrides.CurrentContext = context
	}

	clientConfig := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loadingRules, configOverrides)
	restConfig, err := clientConfig.ClientConfig()
	if err != nil {
		return nil, err
	}

	client, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, err
	}

	return NewForClient(client), nil
}

// NewForClient wraps an existing clientset.
func NewForClient(client kubernetes.Interface) *Scanner {
	return &Scanner{client: client}
}

// DefaultNamespace returns the namespace of the current kubeconfig context.
func DefaultNamespace(kubeconfigPath, context string) string {
	loadingRules := clientcmd.NewDefaultClientConfigLoadingRules()
	if kubeconfigPath != "" {
		loadingRules.ExplicitPath = kubeconfigPath
	}
	overrides := &clientcmd.ConfigOverrides{CurrentContext: context}
	ns, _, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loadingRules, overrides).Namespace()
	if err != nil || ns == "" {
		return "default"
	}
	return ns
}
