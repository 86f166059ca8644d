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

type DeveloperController struct {
	integrityService shared.IntegrityService
}

func NewDeveloperController(integrityService shared.IntegrityService) *DeveloperController {
	return &DeveloperController{
		integrityService: integrityService,
	}
}

func (developerController *DeveloperController) Create(ctx shared.Context) error {
	var req dtos.DeveloperCreateRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	developer, err := developerController.integrityService.CreateDeveloper(ctx.Request().Context(), req)
	if err != nil {
		return httpError(err, "could not create developer")
	}

	return ctx.JSON(200, transformer.DeveloperModelToDTO(developer))
}

func (developerController *DeveloperController) List(ctx shared.Context) error {
	developers, err := developerController.integrityService.ListDevelopers(ctx.Request().Context())
	if err != nil {
		return httpError(err, "could not list developers")
	}

	return ctx.JSON(200, utils.Map(developers, transformer.DeveloperModelToDTO))
}

func (developerController *DeveloperController) Read(ctx shared.Context) error {
	return ctx.JSON(200, transformer.DeveloperModelToDTO(shared.GetDeveloper(ctx)))
}

func (developerController *DeveloperController) Update(ctx shared.Context) error {
	developer := shared.GetDeveloper(ctx)

	var req dtos.DeveloperPatchRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	updated, err := developerController.integrityService.UpdateDeveloper(ctx.Request().Context(), developer.ID, req)
	if err != nil {
		return httpError(err, "could not update developer")
	}

	return ctx.JSON(200, transformer.DeveloperModelToDTO(updated))
}

// Delete removes the developer together with all of its projects.
func (developerController *DeveloperController) Delete(ctx shared.Context) error {
	developer := shared.GetDeveloper(ctx)

	res, err := developerController.integrityService.DeleteDeveloper(ctx.Request().Context(), developer.ID)
	if err != nil {
		return httpError(err, "could not delete developer")
	}

	return ctx.JSON(200, dtos.DeleteDeveloperResponse{DeletedProjectCount: res.DeletedProjectCount})
}
