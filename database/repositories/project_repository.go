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
package repositories

import (
	"github.com/google/uuid"
	"github.com/iscandes/web-sub000/database/models"
	"github.com/iscandes/web-sub000/shared"
	"github.com/iscandes/web-sub000/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type projectRepository struct {
	db shared.DB
	utils.Repository[uuid.UUID, models.Project, shared.DB]
}

func NewProjectRepository(db shared.DB) *projectRepository {
	return &projectRepository{
		db:         db,
		Repository: newGormRepository[uuid.UUID, models.Project](db),
	}
}

func (r *projectRepository) Create(tx shared.DB, project *models.Project) error {
	db := r.GetDB(tx)
	s, err := allocateSlug(db, "projects", &models.Project{}, MakeSlug(project.Name, "project"))
	if err != nil {
		return err
	}
	project.Slug = s
	return db.Create(project).Error
}

// Update writes plain project fields. Ownership goes through SetDeveloper.
func (r *projectRepository) Update(tx shared.DB, project *models.Project) error {
	return r.GetDB(tx).Omit("slug", "developer_id", "developer_name", "created_at").Save(project).Error
}

func (r *projectRepository) ReadBySlug(tx shared.DB, slug string) (models.Project, error) {
	var project models.Project
	err := r.GetDB(tx).Where("slug = ?", slug).First(&project).Error
	return project, err
}

func (r *projectRepository) ListByDeveloperID(tx shared.DB, developerID uuid.UUID) ([]models.Project, error) {
	var projects []models.Project
	err := r.GetDB(tx).Where("developer_id = ?", developerID).Order("created_at ASC").Find(&projects).Error
	return projects, err
}

func (r *projectRepository) CountByDeveloperID(tx shared.DB, developerID uuid.UUID) (int64, error) {
	var count int64
	err := r.GetDB(tx).Model(&models.Project{}).Where("developer_id = ?", developerID).Count(&count).Error
	return count, err
}

func (r *projectRepository) DeleteByDeveloperID(tx shared.DB, developerID uuid.UUID) (int64, error) {
	res := r.GetDB(tx).Where("developer_id = ?", developerID).Delete(&models.Project{})
	return res.RowsAffected, res.Error
}

func (r *projectRepository) LockForUpdate(tx shared.DB, projectID uuid.UUID) (models.Project, error) {
	var project models.Project
	err := r.GetDB(tx).Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", projectID).First(&project).Error
	return project, err
}

func (r *projectRepository) SetDeveloper(tx shared.DB, projectID uuid.UUID, developerID *uuid.UUID, developerName string) error {
	var devID any
	if developerID != nil {
		devID = *developerID
	}

	res := r.GetDB(tx).Model(&models.Project{}).Where("id = ?", projectID).Updates(map[string]any{
		"developer_id":   devID,
		"developer_name": developerName,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *projectRepository) UpdateDeveloperName(tx shared.DB, developerID uuid.UUID, developerName string) (int64, error) {
	res := r.GetDB(tx).Model(&models.Project{}).Where("developer_id = ?", developerID).Update("developer_name", developerName)
	return res.RowsAffected, res.Error
}
