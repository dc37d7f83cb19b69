package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dragonro/DomainAnalyser/internal/output"
	"github.com/dragonro/DomainAnalyser/internal/version"
)

type versionInfo struct {
	Version string `json:"version"`
}

func newVersionCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   "Print the domainanalyser version",
		Args:    cobra.NoArgs,
		GroupID: "utility",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output.Format(d.cfg.Output) == output.FormatJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(versionInfo{Version: version.Version})
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "domainanalyser version %s\n", version.Version)
			return err
		},
	}
}
