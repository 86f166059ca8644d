// Copyright (C) 2024 l3montree GmbH
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
package controllers

import (
	"github.com/iscandes/web-sub000/dtos"
	"github.com/iscandes/web-sub000/shared"
	"github.com/iscandes/web-sub000/transformer"
	"github.com/iscandes/web-sub000/utils"
)

type ProjectController struct {
	integrityService shared.IntegrityService
}

func NewProjectController(integrityService shared.IntegrityService) *ProjectController {
	return &ProjectController{
		integrityService: integrityService,
	}
}

func (projectController *ProjectController) Create(ctx shared.Context) error {
	var req dtos.ProjectCreateRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	project, err := projectController.integrityService.CreateProject(ctx.Request().Context(), req)
	if err != nil {
		return httpError(err, "could not create project")
	}

	return ctx.JSON(200, transformer.ProjectModelToDTO(project))
}

func (projectController *ProjectController) Read(ctx shared.Context) error {
	return ctx.JSON(200, transformer.ProjectModelToDTO(shared.GetProject(ctx)))
}

func (projectController *ProjectController) Update(ctx shared.Context) error {
	project := shared.GetProject(ctx)

	var req dtos.ProjectPatchRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	updated, err := projectController.integrityService.UpdateProject(ctx.Request().Context(), project.ID, req)
	if err != nil {
		return httpError(err, "could not update project")
	}

	return ctx.JSON(200, transformer.ProjectModelToDTO(updated))
}

func (projectController *ProjectController) Delete(ctx shared.Context) error {
	project := shared.GetProject(ctx)

	res, err := projectController.integrityService.DeleteProject(ctx.Request().Context(), project.ID)
	if err != nil {
		return httpError(err, "could not delete project")
	}

	return ctx.JSON(200, dtos.DeleteProjectResponse{Deleted: res.Deleted})
}

// AssignDeveloper moves the project to the developer referenced in the body.
// An empty body removes the current developer.
func (projectController *ProjectController) AssignDeveloper(ctx shared.Context) error {
	project := shared.GetProject(ctx)

	var req dtos.ProjectAssignRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	res, err := projectController.integrityService.Assign(ctx.Request().Context(), project.ID, shared.DeveloperRefFromRequest(req.DeveloperID, req.DeveloperName))
	if err != nil {
		return httpError(err, "could not assign developer")
	}

	return ctx.JSON(200, transformer.AssignResultToDTO(res))
}

func (projectController *ProjectController) ListByDeveloper(ctx shared.Context) error {
	developer := shared.GetDeveloper(ctx)

	projects, err := projectController.integrityService.ListProjectsByDeveloper(ctx.Request().Context(), developer.ID)
	if err != nil {
		return httpError(err, "could not list projects")
	}

	return ctx.JSON(200, utils.Map(projects, transformer.ProjectModelToDTO))
}
