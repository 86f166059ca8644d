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

package middlewares

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
)

var quietPaths = map[string]bool{
	"/api/v1/health/":  true,
	"/api/v1/metrics/": true,
}

// logger logs successful requests. Failed requests are logged by the error handler.
func logger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			now := time.Now()

			err := next(ctx)
			if err != nil || quietPaths[ctx.Request().URL.Path] {
				return err
			}

			attrs := []any{"method", ctx.Request().Method, "url", ctx.Request().URL, "status", ctx.Response().Status, "duration", time.Since(now)}
			if slug := ctx.Param("developerSlug"); slug != "" {
				attrs = append(attrs, "developerSlug", slug)
			}
			if slug := ctx.Param("projectSlug"); slug != "" {
				attrs = append(attrs, "projectSlug", slug)
			}
			slog.Info("handled request", attrs...)
			return nil
		}
	}
}
