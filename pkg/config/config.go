package config

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// FileName is looked up in the current working directory.
const FileName = ".kubectl-ingress.yaml"

// KubectlEnv overrides the kubectl binary from the config file.
const KubectlEnv = "KUBECTL"

// Config holds optional per-project settings loaded from .kubectl-ingress.yaml.
//
//	kubectl: /usr/local/bin/kubectl-1.29
//	verbosity: 2
type Config struct {
	// Kubectl is the binary used to submit manifests. Default: kubectl on PATH.
	Kubectl string `json:"kubectl,omitempty"`
	// Verbosity is the log level used when -v is not given.
	Verbosity int `json:"verbosity,omitempty"`
}

// Load reads path. A missing file is not an error and yields an empty config.
func Load(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return Config{}, err
	default:
		if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	}
	if env := os.Getenv(KubectlEnv); env != "" {
		cfg.Kubectl = env
	}
	return cfg, nil
}
