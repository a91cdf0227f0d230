package cmd

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

func newEditCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:                "edit NAME [kubectl flags]",
		Short:              "Edit an Ingress with kubectl edit",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || strings.HasPrefix(args[0], "-") {
				if len(args) > 0 && (args[0] == "-h" || args[0] == "--help") {
					return cmd.Help()
				}
				return &usageError{err: errors.New("edit needs an ingress name")}
			}
			kubectlArgs := append([]string{"edit", "ingress"}, args...)
			return o.newInvoker(o).Run(cmd.Context(), kubectlArgs)
		},
	}
}
