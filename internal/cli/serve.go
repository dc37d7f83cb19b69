package cli

import (
	"github.com/spf13/cobra"

	"github.com/dragonro/DomainAnalyser/internal/server"
)

func newServeCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:     "serve",
		Short:   "Run the HTTP API",
		GroupID: "utility",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := d.newAnalyzer()
			if err != nil {
				return err
			}
			st, err := d.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			srv := server.New(engine, st, d.logger)
			return srv.ListenAndServe(cmd.Context(), d.cfg.Addr)
		},
	}
}
