package cmd

import (
	"io"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/saiyam1814/kubectl-ingress/pkg/intent"
)

const usageText = `Usage:
  kubectl ingress {{ .SubmitVerbs | join "|" }} NAME [flags] [kubectl flags]
  kubectl ingress list [-n NAMESPACE | -A] [-o {{ .ListFormats | join "|" }}]
  kubectl ingress edit NAME [kubectl flags]
  kubectl ingress version

Flags for {{ .SubmitVerbs | join " and " }}:
{{- range .Families }}
  {{ spelling . | printf "%-44s" }}{{ .Usage }}
{{- end }}

Unrecognized flags are passed to kubectl unchanged.
`

var usageTemplate = template.Must(template.New("usage").
	Funcs(sprig.TxtFuncMap()).
	Funcs(template.FuncMap{"spelling": spelling}).
	Parse(usageText))

// spelling renders "-s, --long VALUE" for one flag family.
func spelling(f intent.Family) string {
	s := "-" + f.Short + ", --" + f.Long
	if !f.IsBool() {
		s += " " + f.Value
	}
	return s
}

func writeUsage(w io.Writer) error {
	return usageTemplate.Execute(w, map[string]interface{}{
		"SubmitVerbs": []string{"create", "apply"},
		"ListFormats": listFormats,
		"Families":    intent.Families(),
	})
}
