package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/saiyam1814/kubectl-ingress/pkg/scanner"
)

var listFormats = []string{"table", "json", "yaml"}

func newListCmd(o *options) *cobra.Command {
	var (
		outputFormat  string
		allNamespaces bool
	)
	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List Ingress resources",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch outputFormat {
			case "table", "json", "yaml":
			default:
				return fmt.Errorf("unknown output format %q, expected one of %s", outputFormat, strings.Join(listFormats, "|"))
			}

			s, err := o.newScanner(o)
			if err != nil {
				return fmt.Errorf("connecting to cluster: %w", err)
			}

			namespace := o.namespace
			switch {
			case allNamespaces:
				namespace = ""
			case namespace == "":
				namespace = scanner.DefaultNamespace(o.kubeconfig, o.kubecontext)
			}

			infos, err := s.List(cmd.Context(), namespace)
			if err != nil {
				return fmt.Errorf("listing ingresses: %w", err)
			}
			return printIngresses(cmd.OutOrStdout(), outputFormat, infos)
		},
	}
	listCmd.Flags().StringVarP(&outputFormat, "output", "o", "table", "Output format: "+strings.Join(listFormats, "|"))
	listCmd.Flags().BoolVarP(&allNamespaces, "all-namespaces", "A", false, "List ingresses in all namespaces")
	return listCmd
}

func printIngresses(w io.Writer, format string, infos []scanner.IngressInfo) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	case "yaml":
		data, err := yaml.Marshal(infos)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}

	if len(infos) == 0 {
		fmt.Fprintln(w, "No Ingress resources found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "NAMESPACE\tNAME\tCLASS\tHOSTS\tBACKENDS\tTLS\n")
	for _, ing := range infos {
		hosts := "*"
		if len(ing.Hosts) > 0 {
			hosts = ing.Hosts[0]
			if len(ing.Hosts) > 1 {
				hosts += fmt.Sprintf(" +%d", len(ing.Hosts)-1)
			}
		}
		class := ing.IngressClass
		if class == "" {
			class = "<none>"
		}
		tls := "no"
		if ing.TLSEnabled {
			tls = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			ing.Namespace, ing.Name, class, hosts, backends(ing.Paths), tls)
	}
	return tw.Flush()
}

// backends lists the distinct service:port targets in path order.
func backends(paths []scanner.PathInfo) string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range paths {
		b := p.Backend()
		if p.ServiceName == "" || seen[b] {
			continue
		}
		seen[b] = true
		out = append(out, b)
	}
	if len(out) == 0 {
		return "<none>"
	}
	return strings.Join(out, ",")
}
