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

package shared

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/iscandes/web-sub000/database/models"
	"github.com/iscandes/web-sub000/dtos"
	"github.com/iscandes/web-sub000/utils"
)

type DeveloperRepository interface {
	utils.Repository[uuid.UUID, models.Developer, DB]
	Update(tx DB, developer *models.Developer) error
	ReadBySlug(tx DB, slug string) (models.Developer, error)
	// FindByName returns the oldest developer with exactly the given name.
	FindByName(tx DB, name string) (models.Developer, error)
	LockForUpdate(tx DB, ids ...uuid.UUID) ([]models.Developer, error)
	SetProjectsCount(tx DB, developerID uuid.UUID, count int64) error
	FindCountDrift(tx DB) ([]models.CountDrift, error)
}

type ProjectRepository interface {
	utils.Repository[uuid.UUID, models.Project, DB]
	Update(tx DB, project *models.Project) error
	ReadBySlug(tx DB, slug string) (models.Project, error)
	ListByDeveloperID(tx DB, developerID uuid.UUID) ([]models.Project, error)
	CountByDeveloperID(tx DB, developerID uuid.UUID) (int64, error)
	DeleteByDeveloperID(tx DB, developerID uuid.UUID) (int64, error)
	LockForUpdate(tx DB, projectID uuid.UUID) (models.Project, error)
	SetDeveloper(tx DB, projectID uuid.UUID, developerID *uuid.UUID, developerName string) error
	UpdateDeveloperName(tx DB, developerID uuid.UUID, developerName string) (int64, error)
}

type TransactionRunner interface {
	WithTransaction(ctx context.Context, fn func(tx DB) error) error
}

type LeaderElector interface {
	IsLeader(ctx context.Context) bool
	Resign(ctx context.Context)
}

type DaemonRunner interface {
	Start()
	Stop()
}

// DeveloperRef points at a developer either by id or by name. The zero value
// references no developer.
type DeveloperRef struct {
	ID   *uuid.UUID
	Name string
}

func DeveloperRefByID(id uuid.UUID) *DeveloperRef {
	return &DeveloperRef{ID: &id}
}

func DeveloperRefByName(name string) *DeveloperRef {
	return &DeveloperRef{Name: name}
}

// IsEmpty reports whether the ref resolves to "no developer".
func (r *DeveloperRef) IsEmpty() bool {
	return r == nil || (r.ID == nil && r.Name == "")
}

// DeveloperRefFromRequest builds the developer reference of a create or patch
// request. An id wins over a name. A blank name references no developer.
func DeveloperRefFromRequest(developerID *uuid.UUID, developerName *string) *DeveloperRef {
	if developerID != nil && *developerID != uuid.Nil {
		return DeveloperRefByID(*developerID)
	}
	if developerName != nil {
		if name := strings.TrimSpace(*developerName); name != "" {
			return DeveloperRefByName(name)
		}
	}
	return nil
}

type AssignResult struct {
	Project      models.Project
	OldDeveloper *models.Developer
	NewDeveloper *models.Developer
}

type DeleteProjectResult struct {
	Deleted bool
}

type DeleteDeveloperResult struct {
	DeletedProjectCount int64
}

type IntegrityService interface {
	CreateProject(ctx context.Context, req dtos.ProjectCreateRequest) (models.Project, error)
	UpdateProject(ctx context.Context, projectID uuid.UUID, patch dtos.ProjectPatchRequest) (models.Project, error)
	DeleteProject(ctx context.Context, projectID uuid.UUID) (DeleteProjectResult, error)
	Assign(ctx context.Context, projectID uuid.UUID, ref *DeveloperRef) (AssignResult, error)

	CreateDeveloper(ctx context.Context, req dtos.DeveloperCreateRequest) (models.Developer, error)
	UpdateDeveloper(ctx context.Context, developerID uuid.UUID, patch dtos.DeveloperPatchRequest) (models.Developer, error)
	DeleteDeveloper(ctx context.Context, developerID uuid.UUID) (DeleteDeveloperResult, error)

	GetDeveloper(ctx context.Context, developerID uuid.UUID) (models.Developer, error)
	GetDeveloperBySlug(ctx context.Context, slug string) (models.Developer, error)
	ListDevelopers(ctx context.Context) ([]models.Developer, error)
	GetProject(ctx context.Context, projectID uuid.UUID) (models.Project, error)
	GetProjectBySlug(ctx context.Context, slug string) (models.Project, error)
	ListProjectsByDeveloper(ctx context.Context, developerID uuid.UUID) ([]models.Project, error)

	VerifyCounts(ctx context.Context) ([]models.CountDrift, error)
	ReconcileCounts(ctx context.Context) ([]models.CountDrift, error)
}
