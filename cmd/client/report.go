package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/orderpay/schedule/internal/domain"
	"github.com/orderpay/schedule/internal/schedule"
	"github.com/orderpay/schedule/internal/syncer"
)

var reportEmployee string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the days with data and pay totals of a month",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportEmployee, "employee", "", "only this employee")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, month, err := setup()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout)
	defer cancel()

	backend, closeBackend, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeBackend()

	var filter domain.Employee
	if reportEmployee != "" {
		if filter, err = parseEmployee(reportEmployee); err != nil {
			return err
		}
	}

	records, err := backend.Fetch(ctx, month)
	if err != nil {
		return err
	}

	renderView(cmd.OutOrStdout(), syncer.Snapshot{
		Month:   month,
		Records: schedule.Densify(month, domain.Employees, records),
	}, filter)
	return nil
}
