package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/dragonro/DomainAnalyser/internal/store"
)

// reportResult wraps a stored report for terminal output.
type reportResult struct {
	store.Report
}

func (r reportResult) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "[%s]\n", r.LookedUpAt.Format(time.RFC3339)); err != nil {
		return err
	}
	return r.Analysis.WriteText(w)
}

func (r reportResult) WritePlain(w io.Writer) error {
	return r.Analysis.WritePlain(w)
}

// reportList renders multiple stored reports.
type reportList []store.Report

func (l reportList) WriteText(w io.Writer) error {
	for i, report := range l {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := (reportResult{report}).WriteText(w); err != nil {
			return err
		}
	}
	return nil
}

func (l reportList) WritePlain(w io.Writer) error {
	for _, report := range l {
		if err := report.Analysis.WritePlain(w); err != nil {
			return err
		}
	}
	return nil
}

func newReportsCmd(d *deps) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "reports [domain]",
		Short:   "Show stored analysis reports",
		GroupID: "analysis",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := d.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			if len(args) == 1 {
				report, err := st.ReportByDomain(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return writeResult(cmd.OutOrStdout(), d, reportResult{*report})
			}

			reports, err := st.RecentReports(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), d, reportList(reports))
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of reports to show")

	return cmd
}
