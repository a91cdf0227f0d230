package cmd

import (
	"errors"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/saiyam1814/kubectl-ingress/pkg/intent"
	"github.com/saiyam1814/kubectl-ingress/pkg/invoker"
	"github.com/saiyam1814/kubectl-ingress/pkg/manifest"
)

// newSubmitCmd builds the create or apply command. Both compile the flags
// into a manifest and differ only in the kubectl verb.
func newSubmitCmd(o *options, verb invoker.Verb) *cobra.Command {
	short := "Create an Ingress from flags"
	if verb == invoker.Apply {
		short = "Apply an Ingress built from flags"
	}
	return &cobra.Command{
		Use:   string(verb) + " NAME [flags] [kubectl flags]",
		Short: short,
		// The compiler accepts spellings pflag cannot parse, such as -ci.
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubmit(cmd, o, verb, args)
		},
	}
}

func runSubmit(cmd *cobra.Command, o *options, verb invoker.Verb, args []string) error {
	in, err := intent.Parse(args)
	if errors.Is(err, pflag.ErrHelp) {
		return writeUsage(cmd.OutOrStdout())
	}
	if err != nil {
		return &usageError{err: err}
	}

	doc, err := manifest.Compile(in)
	if err != nil {
		return &usageError{err: err}
	}
	data, err := doc.Render()
	if err != nil {
		return fmt.Errorf("rendering manifest: %w", err)
	}

	logr.FromContextOrDiscard(cmd.Context()).V(1).Info("compiled ingress",
		"name", doc.Name(), "rules", len(doc.Rules()), "annotations", doc.Annotations().Keys(), "tls", len(doc.TLS()) > 0)

	return o.newInvoker(o).Submit(cmd.Context(), verb, data, in.Passthrough)
}
