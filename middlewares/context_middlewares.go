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
	"github.com/iscandes/web-sub000/shared"
	"github.com/labstack/echo/v4"
)

// DeveloperMiddleware loads the developer referenced by the :developerSlug
// path parameter into the request context.
func DeveloperMiddleware(service shared.IntegrityService) shared.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx shared.Context) error {
			developerSlug, err := shared.GetDeveloperSlug(ctx)
			if err != nil {
				return echo.NewHTTPError(400, "invalid developer slug").WithInternal(err)
			}

			developer, err := service.GetDeveloperBySlug(ctx.Request().Context(), developerSlug)
			if err != nil {
				return echo.NewHTTPError(shared.HTTPStatus(err), "could not find developer").WithInternal(err)
			}

			shared.SetDeveloper(ctx, developer)
			return next(ctx)
		}
	}
}

func ProjectMiddleware(service shared.IntegrityService) shared.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx shared.Context) error {
			projectSlug, err := shared.GetProjectSlug(ctx)
			if err != nil {
				return echo.NewHTTPError(400, "invalid project slug").WithInternal(err)
			}

			project, err := service.GetProjectBySlug(ctx.Request().Context(), projectSlug)
			if err != nil {
				return echo.NewHTTPError(shared.HTTPStatus(err), "could not find project").WithInternal(err)
			}

			shared.SetProject(ctx, project)
			return next(ctx)
		}
	}
}
