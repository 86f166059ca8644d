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

type ProjectRouter struct {
	*echo.Group
}

func NewProjectRouter(
	apiV1Router APIV1Router,
	projectController *controllers.ProjectController,
	integrityService shared.IntegrityService,
) ProjectRouter {
	projectsRouter := apiV1Router.Group.Group("/projects")
	projectsRouter.POST("/", projectController.Create)

	projectRouter := projectsRouter.Group("/:projectSlug", middlewares.ProjectMiddleware(integrityService))
	projectRouter.GET("/", projectController.Read)
	projectRouter.PATCH("/", projectController.Update)
	projectRouter.DELETE("/", projectController.Delete)
	projectRouter.PUT("/developer/", projectController.AssignDeveloper)

	return ProjectRouter{Group: projectRouter}
}
