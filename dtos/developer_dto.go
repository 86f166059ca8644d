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

package dtos

import (
	"time"

	"github.com/google/uuid"
)

type DeveloperCreateRequest struct {
	Name        string  `json:"name" validate:"required"`
	Status      string  `json:"status" validate:"omitempty,oneof=active inactive"`
	Description string  `json:"description"`
	Logo        *string `json:"logo"`
	Location    *string `json:"location"`
	Website     *string `json:"website" validate:"omitempty,url"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Phone       *string `json:"phone"`

	Contact map[string]any `json:"contact"`
}

type DeveloperPatchRequest struct {
	Name        *string `json:"name"`
	Status      *string `json:"status" validate:"omitempty,oneof=active inactive"`
	Description *string `json:"description"`
	Logo        *string `json:"logo"`
	Location    *string `json:"location"`
	Website     *string `json:"website" validate:"omitempty,url"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Phone       *string `json:"phone"`

	Contact *map[string]any `json:"contact"`
}

type DeveloperDTO struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Status        string    `json:"status"`
	ProjectsCount int64     `json:"projectsCount"`

	Description string  `json:"description"`
	Logo        *string `json:"logo"`
	Location    *string `json:"location"`
	Website     *string `json:"website"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`

	Contact map[string]any `json:"contact"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type DeleteDeveloperResponse struct {
	DeletedProjectCount int64 `json:"deletedProjectCount"`
}
