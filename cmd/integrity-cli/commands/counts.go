// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.
package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/iscandes/web-sub000/database"
	"github.com/iscandes/web-sub000/database/models"
	"github.com/iscandes/web-sub000/database/repositories"
	"github.com/iscandes/web-sub000/services"
	"github.com/iscandes/web-sub000/shared"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func NewCountsCommand() *cobra.Command {
	counts := cobra.Command{
		Use:   "counts",
		Short: "Verify and repair developer projects_count values",
	}

	counts.AddCommand(newCountsVerifyCommand())
	counts.AddCommand(newCountsReconcileCommand())
	return &counts
}

func newCountsVerifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "List developers whose projects_count does not match their projects",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithIntegrityService(cmd, func(ctx context.Context, service shared.IntegrityService) error {
				drift, err := service.VerifyCounts(ctx)
				if err != nil {
					return err
				}
				printDrift(cmd.OutOrStdout(), "COUNT VERIFICATION", drift)
				if len(drift) > 0 {
					return fmt.Errorf("%d developer(s) with a wrong projects_count", len(drift))
				}
				return nil
			})
		},
	}
}

func newCountsReconcileCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Recount the projects of every developer and fix wrong values",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithIntegrityService(cmd, func(ctx context.Context, service shared.IntegrityService) error {
				drift, err := service.ReconcileCounts(ctx)
				if err != nil {
					return err
				}
				printDrift(cmd.OutOrStdout(), "COUNT RECONCILIATION", drift)
				return nil
			})
		},
	}
}

func runWithIntegrityService(cmd *cobra.Command, fn func(ctx context.Context, service shared.IntegrityService) error) error {
	shared.LoadConfig() // nolint

	var service shared.IntegrityService
	app := fx.New(
		fx.NopLogger,
		fx.Supply(database.GetPoolConfigFromEnv()),
		database.Module,
		repositories.Module,
		services.ServiceModule,
		fx.Populate(&service),
	)

	startCtx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return err
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		app.Stop(stopCtx) // nolint:errcheck
	}()

	return fn(cmd.Context(), service)
}

func printDrift(w io.Writer, title string, drift []models.CountDrift) {
	fmt.Fprintln(w, text.FgHiCyan.Sprint(title))
	if len(drift) == 0 {
		fmt.Fprintln(w, text.FgHiGreen.Sprint("all developer counts match their projects"))
		return
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Developer", "Slug", "Stored", "Actual"})
	for _, d := range drift {
		tw.AppendRow(table.Row{d.DeveloperID, d.DeveloperSlug, d.Stored, text.FgHiYellow.Sprintf("%d", d.Actual)})
	}
	fmt.Fprintln(w, tw.Render())
}
