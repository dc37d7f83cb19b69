package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// lookupResult is the output of the lookup command.
type lookupResult struct {
	Domain string `json:"domain"`
	Exists bool   `json:"exists"`
}

func (r lookupResult) WriteText(w io.Writer) error {
	status := "does not exist"
	if r.Exists {
		status = "exists"
	}
	_, err := fmt.Fprintf(w, "%s %s\n", r.Domain, status)
	return err
}

func (r lookupResult) WritePlain(w io.Writer) error {
	status := "NXDOMAIN"
	if r.Exists {
		status = "OK"
	}
	_, err := fmt.Fprintf(w, "%s %s\n", r.Domain, status)
	return err
}

func newLookupCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:     "lookup <domain>",
		Short:   "Check whether a domain exists in DNS",
		GroupID: "analysis",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := d.newAnalyzer()
			if err != nil {
				return err
			}
			domain := strings.ToLower(args[0])
			exists, err := engine.VerifyExists(cmd.Context(), domain)
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), d, lookupResult{Domain: domain, Exists: exists})
		},
	}
}
