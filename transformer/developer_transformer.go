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
package transformer

import (
	"strings"

	"github.com/iscandes/web-sub000/database/models"
	"github.com/iscandes/web-sub000/dtos"
	"github.com/iscandes/web-sub000/shared"
	"github.com/iscandes/web-sub000/utils"
)

func DeveloperCreateRequestToModel(developerCreate dtos.DeveloperCreateRequest) models.Developer {
	status := models.DeveloperStatus(developerCreate.Status)
	if !status.Valid() {
		status = models.DeveloperStatusActive
	}

	return models.Developer{
		Name:        strings.TrimSpace(developerCreate.Name),
		Status:      status,
		Description: developerCreate.Description,
		Logo:        utils.TrimmedOrNil(developerCreate.Logo),
		Location:    utils.TrimmedOrNil(developerCreate.Location),
		Website:     utils.TrimmedOrNil(developerCreate.Website),
		Email:       utils.TrimmedOrNil(developerCreate.Email),
		Phone:       utils.TrimmedOrNil(developerCreate.Phone),
		Contact:     developerCreate.Contact,
	}
}

func ApplyDeveloperPatchRequestToModel(developerPatch dtos.DeveloperPatchRequest, developer *models.Developer) bool {
	updated := false
	if developerPatch.Name != nil {
		developer.Name = strings.TrimSpace(*developerPatch.Name)
		updated = true
	}
	if developerPatch.Status != nil {
		developer.Status = models.DeveloperStatus(*developerPatch.Status)
		updated = true
	}
	if developerPatch.Description != nil {
		developer.Description = *developerPatch.Description
		updated = true
	}
	if developerPatch.Logo != nil {
		developer.Logo = utils.TrimmedOrNil(developerPatch.Logo)
		updated = true
	}
	if developerPatch.Location != nil {
		developer.Location = utils.TrimmedOrNil(developerPatch.Location)
		updated = true
	}
	if developerPatch.Website != nil {
		developer.Website = utils.TrimmedOrNil(developerPatch.Website)
		updated = true
	}
	if developerPatch.Email != nil {
		developer.Email = utils.TrimmedOrNil(developerPatch.Email)
		updated = true
	}
	if developerPatch.Phone != nil {
		developer.Phone = utils.TrimmedOrNil(developerPatch.Phone)
		updated = true
	}
	if developerPatch.Contact != nil {
		developer.Contact = *developerPatch.Contact
		updated = true
	}

	return updated
}

func DeveloperModelToDTO(developer models.Developer) dtos.DeveloperDTO {
	contact := map[string]any(developer.Contact)
	if contact == nil {
		contact = map[string]any{}
	}

	return dtos.DeveloperDTO{
		ID:            developer.ID,
		Name:          developer.Name,
		Slug:          developer.Slug,
		Status:        string(developer.Status),
		ProjectsCount: developer.ProjectsCount,
		Description:   developer.Description,
		Logo:          developer.Logo,
		Location:      developer.Location,
		Website:       developer.Website,
		Email:         developer.Email,
		Phone:         developer.Phone,
		Contact:       contact,
		CreatedAt:     developer.CreatedAt,
		UpdatedAt:     developer.UpdatedAt,
	}
}

func AssignResultToDTO(result shared.AssignResult) dtos.AssignResponse {
	res := dtos.AssignResponse{
		Project: ProjectModelToDTO(result.Project),
	}
	if result.OldDeveloper != nil {
		res.OldDeveloper = utils.Ptr(DeveloperModelToDTO(*result.OldDeveloper))
	}
	if result.NewDeveloper != nil {
		res.NewDeveloper = utils.Ptr(DeveloperModelToDTO(*result.NewDeveloper))
	}
	return res
}
