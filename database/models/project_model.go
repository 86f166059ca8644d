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
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type Project struct {
	Model
	Name        string `json:"name" gorm:"type:text;not null"`
	Slug        string `json:"slug" gorm:"type:text;uniqueIndex:projects_slug_key;not null"`
	Description string `json:"description" gorm:"type:text;not null"`

	// DeveloperID is the only ownership reference. DeveloperName is a display
	// copy of the owner's name at write time.
	DeveloperID   *uuid.UUID `json:"developerId" gorm:"type:uuid;index"`
	DeveloperName string     `json:"developerName" gorm:"type:text;not null;default:''"`

	Location *string `json:"location" gorm:"type:text"`
	Status   string  `json:"status" gorm:"type:text;not null;default:''"`

	Features pq.StringArray `json:"features" gorm:"type:text[]"`
	Gallery  pq.StringArray `json:"gallery" gorm:"type:text[]"`
	Media    datatypes.JSON `json:"media" gorm:"type:jsonb"`
}

func (m Project) TableName() string {
	return "projects"
}

func (m Project) IsOwned() bool {
	return m.DeveloperID != nil && *m.DeveloperID != uuid.Nil
}

// OwnedBy reports whether the project currently references developerID.
// A nil developerID matches unowned projects.
func (m Project) OwnedBy(developerID *uuid.UUID) bool {
	if !m.IsOwned() {
		return developerID == nil || *developerID == uuid.Nil
	}
	return developerID != nil && *m.DeveloperID == *developerID
}
