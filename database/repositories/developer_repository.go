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
	"github.com/iscandes/web-sub000/database"
	"github.com/iscandes/web-sub000/database/models"
	"github.com/iscandes/web-sub000/shared"
	"github.com/iscandes/web-sub000/utils"
)

type developerRepository struct {
	db shared.DB
	utils.Repository[uuid.UUID, models.Developer, shared.DB]
}

func NewDeveloperRepository(db shared.DB) *developerRepository {
	return &developerRepository{
		db:         db,
		Repository: newGormRepository[uuid.UUID, models.Developer](db),
	}
}

func (r *developerRepository) Create(tx shared.DB, developer *models.Developer) error {
	db := r.GetDB(tx)
	s, err := allocateSlug(db, "developers", &models.Developer{}, MakeSlug(developer.Name, "developer"))
	if err != nil {
		return err
	}
	developer.Slug = s
	developer.ProjectsCount = 0
	if developer.Status == "" {
		developer.Status = models.DeveloperStatusActive
	}
	return db.Create(developer).Error
}

// Update writes the descriptive fields. The slug and the derived count are
// never touched here.
func (r *developerRepository) Update(tx shared.DB, developer *models.Developer) error {
	return r.GetDB(tx).Omit("projects_count", "slug", "created_at").Save(developer).Error
}

func (r *developerRepository) ReadBySlug(tx shared.DB, slug string) (models.Developer, error) {
	var developer models.Developer
	err := r.GetDB(tx).Where("slug = ?", slug).First(&developer).Error
	return developer, err
}

func (r *developerRepository) FindByName(tx shared.DB, name string) (models.Developer, error) {
	var developer models.Developer
	err := r.GetDB(tx).Where("name = ?", name).Order("created_at ASC").Order("id ASC").First(&developer).Error
	return developer, err
}

func (r *developerRepository) LockForUpdate(tx shared.DB, ids ...uuid.UUID) ([]models.Developer, error) {
	return database.LockForUpdate[models.Developer](r.GetDB(tx), ids...)
}

func (r *developerRepository) SetProjectsCount(tx shared.DB, developerID uuid.UUID, count int64) error {
	return r.GetDB(tx).Model(&models.Developer{}).Where("id = ?", developerID).Update("projects_count", count).Error
}

func (r *developerRepository) FindCountDrift(tx shared.DB) ([]models.CountDrift, error) {
	var drift []models.CountDrift
	err := r.GetDB(tx).Raw(`
		SELECT d.id AS developer_id, d.slug AS developer_slug, d.projects_count AS stored, COUNT(p.id) AS actual
		FROM developers d
		LEFT JOIN projects p ON p.developer_id = d.id
		GROUP BY d.id, d.slug, d.projects_count
		HAVING d.projects_count <> COUNT(p.id)
		ORDER BY d.id ASC
	`).Scan(&drift).Error
	return drift, err
}
