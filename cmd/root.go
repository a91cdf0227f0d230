package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"k8s.io/cli-runtime/pkg/genericiooptions"
	"k8s.io/klog/v2"

	"github.com/saiyam1814/kubectl-ingress/pkg/config"
	"github.com/saiyam1814/kubectl-ingress/pkg/invoker"
	"github.com/saiyam1814/kubectl-ingress/pkg/scanner"
)

// options carries the state shared by all commands.
type options struct {
	kubeconfig  string
	kubecontext string
	namespace   string

	cfg     config.Config
	streams genericiooptions.IOStreams

	newInvoker func(o *options) invoker.Invoker
	newScanner func(o *options) (*scanner.Scanner, error)
}

func newOptions(cfg config.Config, streams genericiooptions.IOStreams) *options {
	return &options{
		cfg:     cfg,
		streams: streams,
		newInvoker: func(o *options) invoker.Invoker {
			k := invoker.NewKubectl(o.cfg.Kubectl, o.streams)
			k.Kubeconfig = o.kubeconfig
			k.Kubecontext = o.kubecontext
			k.Namespace = o.namespace
			return k
		},
		newScanner: func(o *options) (*scanner.Scanner, error) {
			return scanner.NewScanner(o.kubeconfig, o.kubecontext)
		},
	}
}

// usageError marks failures that are reported together with the usage text.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func newRootCmd(o *options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kubectl-ingress",
		Short: "Create and apply Ingress resources from compact flags",
		Long: `kubectl-ingress compiles a short flag syntax into an Ingress manifest and
hands it to kubectl create or kubectl apply.

Examples:
  # Route example.com to service web on port 80
  kubectl ingress create web --url=example.com=web:80

  # Same, with a certificate from a cert-manager ClusterIssuer
  kubectl ingress apply web -u example.com=web:80 -ci letsencrypt

  # List ingresses in all namespaces
  kubectl ingress list -A`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	rootCmd.SetIn(o.streams.In)
	rootCmd.SetOut(o.streams.Out)
	rootCmd.SetErr(o.streams.ErrOut)

	rootCmd.PersistentFlags().StringVar(&o.kubeconfig, "kubeconfig", "", "Path to kubeconfig file (default: $KUBECONFIG or ~/.kube/config)")
	rootCmd.PersistentFlags().StringVar(&o.kubecontext, "context", "", "Kubernetes context to use")
	rootCmd.PersistentFlags().StringVarP(&o.namespace, "namespace", "n", "", "Namespace (default: namespace of the current context)")

	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)
	rootCmd.PersistentFlags().AddGoFlagSet(klogFlags)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if o.cfg.Verbosity > 0 && !cmd.Flags().Changed("v") {
			if err := klogFlags.Set("v", strconv.Itoa(o.cfg.Verbosity)); err != nil {
				return err
			}
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		cmd.SetContext(logr.NewContext(ctx, klog.NewKlogr()))
		return nil
	}

	defaultHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != rootCmd {
			defaultHelp(cmd, args)
			return
		}
		if err := writeUsage(cmd.OutOrStdout()); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
		}
	})

	rootCmd.AddCommand(
		newSubmitCmd(o, invoker.Create),
		newSubmitCmd(o, invoker.Apply),
		newListCmd(o),
		newEditCmd(o),
		newVersionCmd(o),
	)
	return rootCmd
}

// run executes args and returns the process exit code.
func run(ctx context.Context, o *options, args []string) int {
	if args == nil {
		// cobra falls back to os.Args for nil
		args = []string{}
	}
	rootCmd := newRootCmd(o)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var exitErr *invoker.ExitError
	if errors.As(err, &exitErr) {
		// kubectl has already reported the failure.
		return exitErr.Code
	}

	fmt.Fprintf(o.streams.ErrOut, "error: %v\n", err)
	var usageErr *usageError
	if errors.As(err, &usageErr) {
		fmt.Fprintln(o.streams.ErrOut)
		if err := writeUsage(o.streams.ErrOut); err != nil {
			fmt.Fprintln(o.streams.ErrOut, err)
		}
	}
	return 1
}

// Execute runs the command line and returns the exit code.
func Execute() int {
	defer klog.Flush()

	streams := genericiooptions.IOStreams{In: os.Stdin, Out: os.Stdout, ErrOut: os.Stderr}
	cfg, err := config.Load(config.FileName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return run(context.Background(), newOptions(cfg, streams), os.Args[1:])
}
