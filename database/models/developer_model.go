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

package models

import (
	"github.com/google/uuid"
	databasetypes "github.com/iscandes/web-sub000/database/types"
)

type DeveloperStatus string

const (
	DeveloperStatusActive   DeveloperStatus = "active"
	DeveloperStatusInactive DeveloperStatus = "inactive"
)

type Developer struct {
	Model
	Name   string          `json:"name" gorm:"type:text;not null;index"`
	Slug   string          `json:"slug" gorm:"type:text;uniqueIndex:developers_slug_key;not null"`
	Status DeveloperStatus `json:"status" gorm:"type:text;not null;default:'active'"`

	// ProjectsCount is derived from projects.developer_id and only ever
	// written by a recount inside the transaction that changed ownership.
	ProjectsCount int64 `json:"projectsCount" gorm:"not null;default:0"`

	Description string  `json:"description" gorm:"type:text;not null;default:''"`
	Logo        *string `json:"logo" gorm:"type:text"`
	Location    *string `json:"location" gorm:"type:text"`
	Website     *string `json:"website" gorm:"type:text"`
	Email       *string `json:"email" gorm:"type:text"`
	Phone       *string `json:"phone" gorm:"type:text"`

	Contact databasetypes.JSONB `json:"contact" gorm:"type:jsonb"`
}

func (m Developer) TableName() string {
	return "developers"
}

func (s DeveloperStatus) Valid() bool {
	return s == DeveloperStatusActive || s == DeveloperStatusInactive
}

// CountDrift describes a developer whose stored projects_count does not match
// the number of projects referencing it.
type CountDrift struct {
	DeveloperID   uuid.UUID `json:"developerId"`
	DeveloperSlug string    `json:"developerSlug"`
	Stored        int64     `json:"stored"`
	Actual        int64     `json:"actual"`
}
