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

package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var IntegrityOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "integrity_operation_duration_seconds",
	Help:    "Duration of integrity operations including retries",
	Buckets: prometheus.DefBuckets,
}, []string{"operation", "outcome"})

var IntegrityTransactionRetries = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "integrity_transaction_retries_total",
	Help: "Number of transaction bodies re-run after a transient store failure",
}, []string{"operation"})

var IntegrityErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "integrity_errors_total",
	Help: "Classified errors returned by integrity operations",
}, []string{"operation", "kind"})

var DeveloperCountDrift = promauto.NewCounter(prometheus.CounterOpts{
	Name: "integrity_developer_count_drift_total",
	Help: "Developers whose stored projects_count differed from the counted projects during a reconcile",
})

var DevelopersAutoCreated = promauto.NewCounter(prometheus.CounterOpts{
	Name: "integrity_developers_auto_created_total",
	Help: "Developers created implicitly while resolving a developer name",
})
