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

package router

type InfoResponse struct {
	Build     BuildInfo      `json:"build"`
	Process   ProcessInfo    `json:"process"`
	Runtime   RuntimeInfo    `json:"runtime"`
	Database  DatabaseInfo   `json:"database"`
	Integrity *IntegrityInfo `json:"integrity,omitempty"`
}

type BuildInfo struct {
	Version   string `json:"version,omitempty"`
	GoVersion string `json:"goVersion,omitempty"`
}

type ProcessInfo struct {
	PID           int    `json:"pid"`
	Hostname      string `json:"hostname,omitempty"`
	UptimeSeconds int    `json:"uptimeSeconds"`
}

type RuntimeInfo struct {
	NumGoroutines int      `json:"numGoroutines,omitempty"`
	Mem           MemStats `json:"mem,omitempty"`
}

type MemStats struct {
	Alloc      uint64 `json:"alloc"`
	TotalAlloc uint64 `json:"totalAlloc"`
	Sys        uint64 `json:"sys"`
	HeapAlloc  uint64 `json:"heapAlloc"`
}

// PoolInfo combines the configured limits with pgxpool.Stat().
type PoolInfo struct {
	DBName          string `json:"dbName,omitempty"`
	ConnMaxLifetime string `json:"connMaxLifetime,omitempty"`
	ConnMaxIdleTime string `json:"connMaxIdleTime,omitempty"`
	LockTimeout     string `json:"lockTimeout,omitempty"`

	TotalConns    int32 `json:"totalConns"`
	IdleConns     int32 `json:"idleConns"`
	AcquiredConns int32 `json:"acquiredConns"`
	MaxConns      int32 `json:"maxConns"`
}

type DatabaseInfo struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`

	MigrationVersion *uint  `json:"migrationVersion,omitempty"`
	MigrationDirty   *bool  `json:"migrationDirty,omitempty"`
	MigrationError   string `json:"migrationError,omitempty"`

	Pool PoolInfo `json:"pool"`
}

type IntegrityInfo struct {
	Developers         int64 `json:"developers"`
	Projects           int64 `json:"projects"`
	UnassignedProjects int64 `json:"unassignedProjects"`
	// DriftingDevelopers is non-zero only after writes that bypassed the engine.
	DriftingDevelopers int    `json:"driftingDevelopers"`
	Error              string `json:"error,omitempty"`
}
