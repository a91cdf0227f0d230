package invoker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/go-logr/logr"
	"k8s.io/cli-runtime/pkg/genericiooptions"
)

// Verb selects how kubectl submits a manifest.
type Verb string

const (
	Create Verb = "create"
	Apply  Verb = "apply"
)

// saveConfigFlag lets a created object be applied later without a diff
// against an empty last-applied configuration.
const saveConfigFlag = "--save-config"

// Invoker hands work to the cluster tool.
type Invoker interface {
	// Submit sends manifest with verb and the passthrough args.
	Submit(ctx context.Context, verb Verb, manifest []byte, args []string) error
	// Run executes the tool with args as given.
	Run(ctx context.Context, args []string) error
}

// ExitError is returned when the tool exits non-zero.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("kubectl exited with status %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Kubectl runs the kubectl binary.
type Kubectl struct {
	Binary      string
	Kubeconfig  string
	Kubecontext string
	Namespace   string
	Streams     genericiooptions.IOStreams
}

// NewKubectl creates a Kubectl that writes to streams. An empty binary means
// "kubectl" from PATH.
func NewKubectl(binary string, streams genericiooptions.IOStreams) *Kubectl {
	if binary == "" {
		binary = "kubectl"
	}
	return &Kubectl{Binary: binary, Streams: streams}
}

// Submit runs "kubectl <verb> -f - <args>" with manifest on stdin. Create
// always adds --save-config.
func (k *Kubectl) Submit(ctx context.Context, verb Verb, manifest []byte, args []string) error {
	switch verb {
	case Create, Apply:
	default:
		return fmt.Errorf("unsupported verb %q", verb)
	}
	return k.run(ctx, submitArgs(verb, args), bytes.NewReader(manifest))
}

// Run runs kubectl with args and the configured streams.
func (k *Kubectl) Run(ctx context.Context, args []string) error {
	return k.run(ctx, args, k.Streams.In)
}

func (k *Kubectl) run(ctx context.Context, args []string, stdin io.Reader) error {
	full := buildKubectlArgs(k.Kubeconfig, k.Kubecontext, k.Namespace, args)
	logr.FromContextOrDiscard(ctx).V(2).Info("running kubectl", "binary", k.Binary, "args", strings.Join(full, " "))

	cmd := exec.CommandContext(ctx, k.Binary, full...)
	if stdin != nil {
		cmd.Stdin = stdin
	}
	cmd.Stdout = k.Streams.Out
	cmd.Stderr = k.Streams.ErrOut

	err := cmd.Run()
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Code: exitErr.ExitCode(), Err: err}
	}
	return fmt.Errorf("running %s: %w", k.Binary, err)
}

func submitArgs(verb Verb, passthrough []string) []string {
	args := []string{string(verb), "-f", "-"}
	args = append(args, passthrough...)
	if verb == Create {
		args = append(args, saveConfigFlag)
	}
	return args
}

func buildKubectlArgs(kubeconfig, kubecontext, namespace string, rest []string) []string {
	args := []string{}
	if kubeconfig != "" {
		args = append(args, "--kubeconfig", kubeconfig)
	}
	if kubecontext != "" {
		args = append(args, "--context", kubecontext)
	}
	if namespace != "" {
		args = append(args, "--namespace", namespace)
	}
	return append(args, rest...)
}
