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
package services

import (
	"os"
	"strconv"
	"time"
)

type IntegrityConfig struct {
	// MaxRetries is the number of times a transaction body is re-run after a
	// transient failure. Zero disables retries.
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
	// ReconcileConcurrency bounds the number of developers recounted at once.
	ReconcileConcurrency int
}

func GetIntegrityConfigFromEnv() IntegrityConfig {
	cfg := IntegrityConfig{
		MaxRetries:           3,
		InitialInterval:      25 * time.Millisecond,
		MaxInterval:          500 * time.Millisecond,
		ReconcileConcurrency: 4,
	}

	if maxRetries := os.Getenv("INTEGRITY_MAX_RETRIES"); maxRetries != "" {
		if val, err := strconv.ParseUint(maxRetries, 10, 64); err == nil {
			cfg.MaxRetries = val
		}
	}

	if initial := os.Getenv("INTEGRITY_RETRY_INITIAL_INTERVAL"); initial != "" {
		if val, err := time.ParseDuration(initial); err == nil && val > 0 {
			cfg.InitialInterval = val
		}
	}

	if maxInterval := os.Getenv("INTEGRITY_RETRY_MAX_INTERVAL"); maxInterval != "" {
		if val, err := time.ParseDuration(maxInterval); err == nil && val > 0 {
			cfg.MaxInterval = val
		}
	}

	if concurrency := os.Getenv("INTEGRITY_RECONCILE_CONCURRENCY"); concurrency != "" {
		if val, err := strconv.Atoi(concurrency); err == nil && val > 0 {
			cfg.ReconcileConcurrency = val
		}
	}

	return cfg
}
