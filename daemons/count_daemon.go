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
package daemons

import (
	"context"
	"log/slog"
	"time"

	"github.com/iscandes/web-sub000/monitoring"
	"github.com/pkg/errors"
)

// ReconcileCounts repairs every developer whose stored projects count drifted
// from its projects. Drift means a write bypassed the engine, so it is alerted.
func (runner *DaemonRunner) ReconcileCounts(ctx context.Context) error {
	start := time.Now()

	drift, err := runner.integrityService.ReconcileCounts(ctx)
	if err != nil {
		return errors.Wrap(err, "could not reconcile counts")
	}

	for _, d := range drift {
		slog.Warn("repaired developer projects count", "developerID", d.DeveloperID, "developerSlug", d.DeveloperSlug, "stored", d.Stored, "actual", d.Actual)
	}
	if len(drift) > 0 {
		monitoring.Alert("developer projects counts drifted", errors.Errorf("%d developers had a stale projects count", len(drift)))
	}

	slog.Info("developer counts reconciled", "repaired", len(drift), "duration", time.Since(start))
	return nil
}
