// Copyright (C) 2025 l3montree GmbH
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
	"math/rand"
	"os"
	"time"

	"github.com/iscandes/web-sub000/shared"
	"go.uber.org/fx"
)

type DaemonConfig struct {
	// DriftCheckInterval is the pause between two count reconciliations.
	// Zero disables the daemon.
	DriftCheckInterval time.Duration
}

func GetDaemonConfigFromEnv() DaemonConfig {
	cfg := DaemonConfig{
		DriftCheckInterval: time.Hour,
	}

	if interval := os.Getenv("INTEGRITY_DRIFT_CHECK_INTERVAL"); interval != "" {
		if val, err := time.ParseDuration(interval); err == nil && val >= 0 {
			cfg.DriftCheckInterval = val
		}
	}

	return cfg
}

// DaemonRunner encapsulates daemon dependencies and lifecycle
type DaemonRunner struct {
	integrityService shared.IntegrityService
	leaderElector    shared.LeaderElector
	config           DaemonConfig

	cancel context.CancelFunc
	done   chan struct{}
}

// NewDaemonRunner creates a new daemon runner with injected dependencies
func NewDaemonRunner(
	integrityService shared.IntegrityService,
	leaderElector shared.LeaderElector,
	config DaemonConfig,
) *DaemonRunner {
	return &DaemonRunner{
		integrityService: integrityService,
		leaderElector:    leaderElector,
		config:           config,
	}
}

// Start initiates all background daemons
func (runner *DaemonRunner) Start() {
	if runner.config.DriftCheckInterval <= 0 {
		slog.Info("count drift daemon disabled")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	runner.cancel = cancel
	runner.done = make(chan struct{})

	go func() {
		defer close(runner.done)
		for {
			runner.tick(ctx)

			select {
			case <-ctx.Done():
				return
			case <-time.After(jitter(runner.config.DriftCheckInterval)):
			}
		}
	}()
}

// Stop cancels a running tick, waits for the loop to exit and gives up leadership.
func (runner *DaemonRunner) Stop() {
	if runner.cancel == nil {
		return
	}
	runner.cancel()
	<-runner.done

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	runner.leaderElector.Resign(ctx)
}

func (runner *DaemonRunner) tick(ctx context.Context) {
	if !runner.leaderElector.IsLeader(ctx) {
		slog.Debug("not the leader - skipping background jobs")
		return
	}

	slog.Info("this instance is the leader - running background jobs")
	if err := runner.ReconcileCounts(ctx); err != nil && ctx.Err() == nil {
		slog.Error("could not reconcile developer counts", "err", err)
	}
}

// jitter spreads the interval by up to a fifth so that instances do not
// contend for leadership in lockstep.
func jitter(interval time.Duration) time.Duration {
	spread := int64(interval / 5)
	if spread <= 0 {
		return interval
	}
	return interval + time.Duration(rand.Int63n(spread)) // #nosec
}

var _ shared.DaemonRunner = (*DaemonRunner)(nil)

var Module = fx.Options(
	fx.Provide(GetDaemonConfigFromEnv),
	fx.Provide(fx.Annotate(NewDaemonRunner, fx.As(new(shared.DaemonRunner)))),
)
