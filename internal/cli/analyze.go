package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dragonro/DomainAnalyser/internal/crtsh"
	"github.com/dragonro/DomainAnalyser/internal/worker"
)

func newAnalyzeCmd(d *deps) *cobra.Command {
	var includeSubdomains bool

	cmd := &cobra.Command{
		Use:     "analyze [domain...]",
		Short:   "Analyze the DNS footprint of one or more domains",
		GroupID: "analysis",
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := resolveInputs(cmd, args)
			if err != nil {
				return err
			}
			if len(inputs) == 0 {
				return fmt.Errorf("no input: pass an argument or pipe stdin")
			}

			engine, err := d.newAnalyzer()
			if err != nil {
				return err
			}

			var results []worker.Result
			if d.cfg.Passive {
				// Each domain gets its own candidate set from certificate
				// transparency, so analyses run one by one.
				ctClient := d.newCrtshClient()
				for _, domain := range inputs {
					subs, err := ctClient.Subdomains(cmd.Context(), domain)
					if err != nil {
						d.logger.Warn("certificate transparency lookup failed", "domain", domain, "error", err)
					}
					extra := crtsh.Labels(subs, domain)
					analysis, err := engine.AnalyzeDomain(cmd.Context(), domain, d.analyzeOptions(includeSubdomains, extra))
					results = append(results, worker.Result{Input: domain, Output: analysis, Err: err})
				}
			} else {
				pool := worker.NewPool(d.cfg.Concurrency, d.logger)
				results = pool.Run(cmd.Context(), engine, inputs, d.analyzeOptions(includeSubdomains, nil))
			}

			var failed int
			for _, result := range results {
				if result.Err != nil {
					failed++
					d.logger.Error("analysis failed", "domain", result.Input, "error", result.Err)
					continue
				}
				if err := writeResult(cmd.OutOrStdout(), d, result.Output); err != nil {
					return err
				}
			}
			if failed == len(results) {
				return fmt.Errorf("all %d analyses failed", failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&includeSubdomains, "subdomains", "s", false, "enumerate subdomains")

	return cmd
}
