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
	"github.com/iscandes/web-sub000/controllers"
	"github.com/iscandes/web-sub000/middlewares"
	"github.com/iscandes/web-sub000/shared"
	"github.com/labstack/echo/v4"
)

type DeveloperRouter struct {
	*echo.Group
}

func NewDeveloperRouter(
	apiV1Router APIV1Router,
	developerController *controllers.DeveloperController,
	projectController *controllers.ProjectController,
	integrityService shared.IntegrityService,
) DeveloperRouter {
	developersRouter := apiV1Router.Group.Group("/developers")
	developersRouter.GET("/", developerController.List)
	developersRouter.POST("/", developerController.Create)

	developerRouter := developersRouter.Group("/:developerSlug", middlewares.DeveloperMiddleware(integrityService))
	developerRouter.GET("/", developerController.Read)
	developerRouter.GET("/projects/", projectController.ListByDeveloper)
	developerRouter.PATCH("/", developerController.Update)
	developerRouter.DELETE("/", developerController.Delete)

	return DeveloperRouter{Group: developerRouter}
}
