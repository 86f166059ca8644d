// Copyright (C) 2023 Tim Bastin, l3montree GmbH
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

package dtos

import (
	"time"

	"github.com/google/uuid"
)

type MediaReference struct {
	URL   string `json:"url" validate:"required"`
	Type  string `json:"type"`
	Title string `json:"title"`
}

type ProjectCreateRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`

	Location *string          `json:"location"`
	Status   string           `json:"status"`
	Features []string         `json:"features"`
	Gallery  []string         `json:"gallery"`
	Media    []MediaReference `json:"media" validate:"dive"`

	// the owning developer can be referenced by id or by name. a name that
	// does not exist yet creates the developer.
	DeveloperID   *uuid.UUID `json:"developerId"`
	DeveloperName *string    `json:"developerName"`
}

type ProjectPatchRequest struct {
	Name        *string           `json:"name"`
	Description *string           `json:"description"`
	Location    *string           `json:"location"`
	Status      *string           `json:"status"`
	Features    *[]string         `json:"features"`
	Gallery     *[]string         `json:"gallery"`
	Media       *[]MediaReference `json:"media"`

	// ownership changes. an empty developerName removes the owner.
	DeveloperID   *uuid.UUID `json:"developerId"`
	DeveloperName *string    `json:"developerName"`
}

// ChangesOwnership reports whether the patch touches the developer reference.
func (p ProjectPatchRequest) ChangesOwnership() bool {
	return p.DeveloperID != nil || p.DeveloperName != nil
}

type ProjectAssignRequest struct {
	DeveloperID   *uuid.UUID `json:"developerId"`
	DeveloperName *string    `json:"developerName"`
}

type ProjectDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`

	DeveloperID   *uuid.UUID `json:"developerId"`
	DeveloperName string     `json:"developerName"`

	Location *string          `json:"location"`
	Status   string           `json:"status"`
	Features []string         `json:"features"`
	Gallery  []string         `json:"gallery"`
	Media    []MediaReference `json:"media"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type AssignResponse struct {
	Project      ProjectDTO    `json:"project"`
	OldDeveloper *DeveloperDTO `json:"oldDeveloper,omitempty"`
	NewDeveloper *DeveloperDTO `json:"newDeveloper,omitempty"`
}

type DeleteProjectResponse struct {
	Deleted bool `json:"deleted"`
}
