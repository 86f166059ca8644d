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
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/iscandes/web-sub000/database/models"
	"github.com/iscandes/web-sub000/dtos"
	"github.com/iscandes/web-sub000/utils"
	"gorm.io/datatypes"
)

func ProjectCreateRequestToModel(projectCreate dtos.ProjectCreateRequest) models.Project {
	return models.Project{
		Name:        strings.TrimSpace(projectCreate.Name),
		Description: strings.TrimSpace(projectCreate.Description),
		Location:    utils.TrimmedOrNil(projectCreate.Location),
		Status:      projectCreate.Status,
		Features:    projectCreate.Features,
		Gallery:     projectCreate.Gallery,
		Media:       MediaToJSON(projectCreate.Media),
	}
}

// ApplyProjectPatchRequestToModel applies the plain fields of the patch. The
// developer reference is not part of it.
func ApplyProjectPatchRequestToModel(projectPatch dtos.ProjectPatchRequest, project *models.Project) bool {
	updated := false
	if projectPatch.Name != nil {
		project.Name = strings.TrimSpace(*projectPatch.Name)
		updated = true
	}
	if projectPatch.Description != nil {
		project.Description = strings.TrimSpace(*projectPatch.Description)
		updated = true
	}
	if projectPatch.Location != nil {
		project.Location = utils.TrimmedOrNil(projectPatch.Location)
		updated = true
	}
	if projectPatch.Status != nil {
		project.Status = *projectPatch.Status
		updated = true
	}
	if projectPatch.Features != nil {
		project.Features = *projectPatch.Features
		updated = true
	}
	if projectPatch.Gallery != nil {
		project.Gallery = *projectPatch.Gallery
		updated = true
	}
	if projectPatch.Media != nil {
		project.Media = MediaToJSON(*projectPatch.Media)
		updated = true
	}

	return updated
}

func MediaToJSON(media []dtos.MediaReference) datatypes.JSON {
	if media == nil {
		return nil
	}
	b, err := json.Marshal(media)
	if err != nil {
		slog.Error("could not marshal media references", "err", err)
		return nil
	}
	return datatypes.JSON(b)
}

func MediaFromJSON(raw datatypes.JSON) []dtos.MediaReference {
	media := []dtos.MediaReference{}
	if len(raw) == 0 {
		return media
	}
	if err := json.Unmarshal(raw, &media); err != nil {
		slog.Warn("could not unmarshal media references", "err", err)
		return []dtos.MediaReference{}
	}
	return media
}

func ProjectModelToDTO(project models.Project) dtos.ProjectDTO {
	features := []string(project.Features)
	if features == nil {
		features = []string{}
	}
	gallery := []string(project.Gallery)
	if gallery == nil {
		gallery = []string{}
	}

	return dtos.ProjectDTO{
		ID:            project.ID,
		Name:          project.Name,
		Slug:          project.Slug,
		Description:   project.Description,
		DeveloperID:   project.DeveloperID,
		DeveloperName: project.DeveloperName,
		Location:      project.Location,
		Status:        project.Status,
		Features:      features,
		Gallery:       gallery,
		Media:         MediaFromJSON(project.Media),
		CreatedAt:     project.CreatedAt,
		UpdatedAt:     project.UpdatedAt,
	}
}
