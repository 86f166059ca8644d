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

import (
	"context"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/iscandes/web-sub000/database"
	"github.com/iscandes/web-sub000/database/models"
	"github.com/iscandes/web-sub000/shared"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Version is set at build time.
var Version = "dev"

var startedAt = time.Now()

type APIV1Router struct {
	*echo.Group
}

type statusHandler struct {
	db               shared.DB
	pool             *pgxpool.Pool
	integrityService shared.IntegrityService
}

func NewAPIV1Router(e *echo.Echo,
	db shared.DB,
	pool *pgxpool.Pool,
	integrityService shared.IntegrityService,
) APIV1Router {
	apiV1Router := e.Group("/api/v1")

	h := statusHandler{db: db, pool: pool, integrityService: integrityService}
	apiV1Router.GET("/info/", h.info)
	apiV1Router.GET("/health/", h.health)
	apiV1Router.GET("/metrics/", echo.WrapHandler(promhttp.Handler()))

	return APIV1Router{
		Group: apiV1Router,
	}
}

func (h statusHandler) health(ctx echo.Context) error {
	if err := h.pool.Ping(ctx.Request().Context()); err != nil {
		return ctx.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "unhealthy",
			"error":  "database ping failed",
		})
	}
	return ctx.JSON(http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

func (h statusHandler) info(ctx echo.Context) error {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	host, _ := os.Hostname()
	resp := InfoResponse{
		Build: BuildInfo{
			Version:   Version,
			GoVersion: runtime.Version(),
		},
		Process: ProcessInfo{
			PID:           os.Getpid(),
			Hostname:      host,
			UptimeSeconds: int(time.Since(startedAt).Seconds()),
		},
		Runtime: RuntimeInfo{
			NumGoroutines: runtime.NumGoroutine(),
			Mem: MemStats{
				Alloc:      mem.Alloc,
				TotalAlloc: mem.TotalAlloc,
				Sys:        mem.Sys,
				HeapAlloc:  mem.HeapAlloc,
			},
		},
		Database: h.databaseInfo(ctx.Request().Context()),
	}
	if resp.Database.Status == "healthy" {
		resp.Integrity = h.integrityInfo(ctx.Request().Context())
	}

	return ctx.JSON(http.StatusOK, resp)
}

func (h statusHandler) databaseInfo(ctx context.Context) DatabaseInfo {
	poolCfg := database.GetPoolConfigFromEnv()
	stats := h.pool.Stat()
	info := DatabaseInfo{
		Status: "healthy",
		Pool: PoolInfo{
			DBName:          poolCfg.DBName,
			ConnMaxLifetime: poolCfg.ConnMaxLifetime.String(),
			ConnMaxIdleTime: poolCfg.ConnMaxIdleTime.String(),
			LockTimeout:     poolCfg.LockTimeout.String(),
			TotalConns:      stats.TotalConns(),
			IdleConns:       stats.IdleConns(),
			AcquiredConns:   stats.AcquiredConns(),
			MaxConns:        stats.MaxConns(),
		},
	}

	if err := h.pool.Ping(ctx); err != nil {
		info.Status = "unhealthy"
		info.Error = "database ping failed"
		return info
	}

	if ver, dirty, err := database.GetMigrationVersionWithDB(h.db); err == nil {
		info.MigrationVersion = &ver
		info.MigrationDirty = &dirty
	} else {
		info.MigrationError = err.Error()
	}
	return info
}

func (h statusHandler) integrityInfo(ctx context.Context) *IntegrityInfo {
	info := &IntegrityInfo{}
	db := h.db.WithContext(ctx)
	if err := db.Model(&models.Developer{}).Count(&info.Developers).Error; err != nil {
		info.Error = "could not count developers"
		return info
	}
	if err := db.Model(&models.Project{}).Count(&info.Projects).Error; err != nil {
		info.Error = "could not count projects"
		return info
	}
	if err := db.Model(&models.Project{}).Where("developer_id IS NULL").Count(&info.UnassignedProjects).Error; err != nil {
		info.Error = "could not count unassigned projects"
		return info
	}

	drift, err := h.integrityService.VerifyCounts(ctx)
	if err != nil {
		info.Error = "could not verify developer counts"
		return info
	}
	info.DriftingDevelopers = len(drift)
	return info
}
