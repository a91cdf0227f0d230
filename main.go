package main

import (
	"os"

	"github.com/saiyam1814/kubectl-ingress/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
