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
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/iscandes/web-sub000/database"
	"github.com/iscandes/web-sub000/database/models"
	"github.com/iscandes/web-sub000/dtos"
	"github.com/iscandes/web-sub000/monitoring"
	"github.com/iscandes/web-sub000/shared"
	"github.com/iscandes/web-sub000/transformer"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// errOwnershipChanged is returned when a project moved to another developer
// between reading it and locking it. The whole transaction body is re-run.
var errOwnershipChanged = shared.NewTransientError(errors.New("project ownership changed concurrently"))

type integrityService struct {
	retrier
	developerRepository shared.DeveloperRepository
	projectRepository   shared.ProjectRepository
}

var _ shared.IntegrityService = &integrityService{}

func NewIntegrityService(store shared.TransactionRunner, developerRepository shared.DeveloperRepository, projectRepository shared.ProjectRepository, config IntegrityConfig) *integrityService {
	return &integrityService{
		retrier: retrier{
			runner: store,
			config: config,
		},
		developerRepository: developerRepository,
		projectRepository:   projectRepository,
	}
}

func (s *integrityService) CreateProject(ctx context.Context, req dtos.ProjectCreateRequest) (models.Project, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	if err := shared.ValidateStruct(req); err != nil {
		return models.Project{}, err
	}
	ref := shared.DeveloperRefFromRequest(req.DeveloperID, req.DeveloperName)

	var project models.Project
	err := s.run(ctx, "create_project", func(tx shared.DB) error {
		project = transformer.ProjectCreateRequestToModel(req)

		developer, err := s.resolveDeveloper(tx, ref)
		if err != nil {
			return err
		}

		if developer != nil {
			locked, err := s.lockDevelopers(tx, developer.ID)
			if err != nil {
				return err
			}
			owner, ok := locked[developer.ID]
			if !ok {
				return shared.NewNotFoundError("developer", developer.ID)
			}
			project.DeveloperID = &owner.ID
			project.DeveloperName = owner.Name
		}

		if err := s.projectRepository.Create(tx, &project); err != nil {
			return err
		}

		if developer != nil {
			if _, err := s.recount(tx, developer.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.Project{}, err
	}

	slog.Info("project created", "projectID", project.ID, "projectSlug", project.Slug, "developerID", project.DeveloperID)
	return project, nil
}

func (s *integrityService) UpdateProject(ctx context.Context, projectID uuid.UUID, patch dtos.ProjectPatchRequest) (models.Project, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return models.Project{}, shared.NewValidationError("name", "must not be empty")
	}
	if patch.Description != nil && strings.TrimSpace(*patch.Description) == "" {
		return models.Project{}, shared.NewValidationError("description", "must not be empty")
	}
	if err := shared.ValidateStruct(patch); err != nil {
		return models.Project{}, err
	}

	var project models.Project
	err := s.run(ctx, "update_project", func(tx shared.DB) error {
		// ownership first: it locks developers before the project row
		if patch.ChangesOwnership() {
			ref := shared.DeveloperRefFromRequest(patch.DeveloperID, patch.DeveloperName)
			if _, err := s.assign(tx, projectID, ref); err != nil {
				return err
			}
		}

		var err error
		project, err = s.projectRepository.LockForUpdate(tx, projectID)
		if err != nil {
			return notFound(err, "project", projectID)
		}

		if !transformer.ApplyProjectPatchRequestToModel(patch, &project) {
			return nil
		}
		return s.projectRepository.Update(tx, &project)
	})
	if err != nil {
		return models.Project{}, err
	}
	return project, nil
}

func (s *integrityService) DeleteProject(ctx context.Context, projectID uuid.UUID) (shared.DeleteProjectResult, error) {
	var result shared.DeleteProjectResult
	err := s.run(ctx, "delete_project", func(tx shared.DB) error {
		result = shared.DeleteProjectResult{}

		project, err := s.projectRepository.Read(tx, projectID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		if project.IsOwned() {
			if _, err := s.lockDevelopers(tx, *project.DeveloperID); err != nil {
				return err
			}
		}

		current, err := s.projectRepository.LockForUpdate(tx, projectID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if !current.OwnedBy(project.DeveloperID) {
			return errOwnershipChanged
		}

		if err := s.projectRepository.Delete(tx, projectID); err != nil {
			return err
		}

		if project.IsOwned() {
			if _, err := s.recount(tx, *project.DeveloperID); err != nil {
				return err
			}
		}

		result.Deleted = true
		return nil
	})
	if err != nil {
		return shared.DeleteProjectResult{}, err
	}
	return result, nil
}

func (s *integrityService) Assign(ctx context.Context, projectID uuid.UUID, ref *shared.DeveloperRef) (shared.AssignResult, error) {
	if ref != nil {
		ref = &shared.DeveloperRef{ID: ref.ID, Name: strings.TrimSpace(ref.Name)}
	}

	var result shared.AssignResult
	err := s.run(ctx, "assign", func(tx shared.DB) error {
		var err error
		result, err = s.assign(tx, projectID, ref)
		return err
	})
	if err != nil {
		return shared.AssignResult{}, err
	}
	return result, nil
}

// assign moves the project to the referenced developer inside tx. Locks are
// taken in the order name lock, developer rows by ascending id, project row.
func (s *integrityService) assign(tx shared.DB, projectID uuid.UUID, ref *shared.DeveloperRef) (shared.AssignResult, error) {
	target, err := s.resolveDeveloper(tx, ref)
	if err != nil {
		return shared.AssignResult{}, err
	}
	var targetID *uuid.UUID
	if target != nil {
		targetID = &target.ID
	}

	project, err := s.projectRepository.Read(tx, projectID)
	if err != nil {
		return shared.AssignResult{}, notFound(err, "project", projectID)
	}

	if project.OwnedBy(targetID) {
		return shared.AssignResult{
			Project:      project,
			OldDeveloper: target,
			NewDeveloper: target,
		}, nil
	}

	ids := make([]uuid.UUID, 0, 2)
	if project.IsOwned() {
		ids = append(ids, *project.DeveloperID)
	}
	if target != nil {
		ids = append(ids, target.ID)
	}
	locked, err := s.lockDevelopers(tx, ids...)
	if err != nil {
		return shared.AssignResult{}, err
	}

	newOwnerName := ""
	var newDeveloper *models.Developer
	if target != nil {
		owner, ok := locked[target.ID]
		if !ok {
			return shared.AssignResult{}, shared.NewNotFoundError("developer", target.ID)
		}
		newDeveloper = &owner
		newOwnerName = owner.Name
	}

	current, err := s.projectRepository.LockForUpdate(tx, projectID)
	if err != nil {
		return shared.AssignResult{}, notFound(err, "project", projectID)
	}
	if !current.OwnedBy(project.DeveloperID) {
		return shared.AssignResult{}, errOwnershipChanged
	}

	if err := s.projectRepository.SetDeveloper(tx, projectID, targetID, newOwnerName); err != nil {
		return shared.AssignResult{}, err
	}

	var oldDeveloper *models.Developer
	if project.IsOwned() {
		old, ok := locked[*project.DeveloperID]
		if !ok {
			// the foreign key keeps an owned project's developer alive
			return shared.AssignResult{}, shared.NewNotFoundError("developer", *project.DeveloperID)
		}
		if old.ProjectsCount, err = s.recount(tx, old.ID); err != nil {
			return shared.AssignResult{}, err
		}
		oldDeveloper = &old
	}
	if newDeveloper != nil {
		if newDeveloper.ProjectsCount, err = s.recount(tx, newDeveloper.ID); err != nil {
			return shared.AssignResult{}, err
		}
	}

	project, err = s.projectRepository.Read(tx, projectID)
	if err != nil {
		return shared.AssignResult{}, err
	}

	slog.Debug("project reassigned", "projectID", projectID, "from", current.DeveloperID, "to", targetID)
	return shared.AssignResult{
		Project:      project,
		OldDeveloper: oldDeveloper,
		NewDeveloper: newDeveloper,
	}, nil
}

func (s *integrityService) CreateDeveloper(ctx context.Context, req dtos.DeveloperCreateRequest) (models.Developer, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := shared.ValidateStruct(req); err != nil {
		return models.Developer{}, err
	}

	var developer models.Developer
	err := s.run(ctx, "create_developer", func(tx shared.DB) error {
		developer = transformer.DeveloperCreateRequestToModel(req)
		return s.developerRepository.Create(tx, &developer)
	})
	if err != nil {
		return models.Developer{}, err
	}

	slog.Info("developer created", "developerID", developer.ID, "developerSlug", developer.Slug)
	return developer, nil
}

func (s *integrityService) UpdateDeveloper(ctx context.Context, developerID uuid.UUID, patch dtos.DeveloperPatchRequest) (models.Developer, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return models.Developer{}, shared.NewValidationError("name", "must not be empty")
	}
	if err := shared.ValidateStruct(patch); err != nil {
		return models.Developer{}, err
	}

	var developer models.Developer
	err := s.run(ctx, "update_developer", func(tx shared.DB) error {
		locked, err := s.lockDevelopers(tx, developerID)
		if err != nil {
			return err
		}
		var ok bool
		developer, ok = locked[developerID]
		if !ok {
			return shared.NewNotFoundError("developer", developerID)
		}

		previousName := developer.Name
		if !transformer.ApplyDeveloperPatchRequestToModel(patch, &developer) {
			return nil
		}
		if err := s.developerRepository.Update(tx, &developer); err != nil {
			return err
		}

		if developer.Name != previousName {
			n, err := s.projectRepository.UpdateDeveloperName(tx, developerID, developer.Name)
			if err != nil {
				return err
			}
			slog.Info("developer renamed", "developerID", developerID, "projects", n)
		}
		return nil
	})
	if err != nil {
		return models.Developer{}, err
	}
	return developer, nil
}

func (s *integrityService) DeleteDeveloper(ctx context.Context, developerID uuid.UUID) (shared.DeleteDeveloperResult, error) {
	var result shared.DeleteDeveloperResult
	err := s.run(ctx, "delete_developer", func(tx shared.DB) error {
		result = shared.DeleteDeveloperResult{}

		locked, err := s.lockDevelopers(tx, developerID)
		if err != nil {
			return err
		}
		if _, ok := locked[developerID]; !ok {
			return shared.NewNotFoundError("developer", developerID)
		}

		n, err := s.projectRepository.DeleteByDeveloperID(tx, developerID)
		if err != nil {
			return err
		}
		if err := s.developerRepository.Delete(tx, developerID); err != nil {
			return err
		}

		result.DeletedProjectCount = n
		return nil
	})
	if err != nil {
		return shared.DeleteDeveloperResult{}, err
	}

	slog.Info("developer deleted", "developerID", developerID, "deletedProjects", result.DeletedProjectCount)
	return result, nil
}

func (s *integrityService) GetDeveloper(ctx context.Context, developerID uuid.UUID) (models.Developer, error) {
	var developer models.Developer
	err := s.run(ctx, "get_developer", func(tx shared.DB) error {
		var err error
		developer, err = s.developerRepository.Read(tx, developerID)
		return notFound(err, "developer", developerID)
	})
	return developer, err
}

func (s *integrityService) GetDeveloperBySlug(ctx context.Context, slug string) (models.Developer, error) {
	var developer models.Developer
	err := s.run(ctx, "get_developer", func(tx shared.DB) error {
		var err error
		developer, err = s.developerRepository.ReadBySlug(tx, slug)
		return notFound(err, "developer", slug)
	})
	return developer, err
}

func (s *integrityService) ListDevelopers(ctx context.Context) ([]models.Developer, error) {
	var developers []models.Developer
	err := s.run(ctx, "list_developers", func(tx shared.DB) error {
		var err error
		developers, err = s.developerRepository.All(tx)
		return err
	})
	return developers, err
}

func (s *integrityService) GetProject(ctx context.Context, projectID uuid.UUID) (models.Project, error) {
	var project models.Project
	err := s.run(ctx, "get_project", func(tx shared.DB) error {
		var err error
		project, err = s.projectRepository.Read(tx, projectID)
		return notFound(err, "project", projectID)
	})
	return project, err
}

func (s *integrityService) GetProjectBySlug(ctx context.Context, slug string) (models.Project, error) {
	var project models.Project
	err := s.run(ctx, "get_project", func(tx shared.DB) error {
		var err error
		project, err = s.projectRepository.ReadBySlug(tx, slug)
		return notFound(err, "project", slug)
	})
	return project, err
}

func (s *integrityService) ListProjectsByDeveloper(ctx context.Context, developerID uuid.UUID) ([]models.Project, error) {
	var projects []models.Project
	err := s.run(ctx, "list_projects", func(tx shared.DB) error {
		if _, err := s.developerRepository.Read(tx, developerID); err != nil {
			return notFound(err, "developer", developerID)
		}
		var err error
		projects, err = s.projectRepository.ListByDeveloperID(tx, developerID)
		return err
	})
	return projects, err
}

func (s *integrityService) VerifyCounts(ctx context.Context) ([]models.CountDrift, error) {
	var drift []models.CountDrift
	err := s.run(ctx, "verify_counts", func(tx shared.DB) error {
		var err error
		drift, err = s.developerRepository.FindCountDrift(tx)
		return err
	})
	return drift, err
}

// ReconcileCounts recounts every developer in its own transaction and returns
// the developers whose stored count was wrong.
func (s *integrityService) ReconcileCounts(ctx context.Context) ([]models.CountDrift, error) {
	developers, err := s.ListDevelopers(ctx)
	if err != nil {
		return nil, err
	}

	var (
		mu    sync.Mutex
		drift = []models.CountDrift{}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(s.config.ReconcileConcurrency, 1))
	for _, developer := range developers {
		g.Go(func() error {
			repaired, err := s.reconcileDeveloper(gctx, developer.ID)
			if err != nil || repaired == nil {
				return err
			}
			mu.Lock()
			drift = append(drift, *repaired)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortFunc(drift, func(a, b models.CountDrift) int {
		return strings.Compare(a.DeveloperID.String(), b.DeveloperID.String())
	})
	if len(drift) > 0 {
		monitoring.DeveloperCountDrift.Add(float64(len(drift)))
		slog.Warn("repaired developer project counts", "developers", len(drift))
	}
	return drift, nil
}

// reconcileDeveloper recounts one developer and returns the drift it repaired,
// nil if the stored count was right or the developer is gone. The result is
// only known once the transaction committed.
func (s *integrityService) reconcileDeveloper(ctx context.Context, developerID uuid.UUID) (*models.CountDrift, error) {
	var repaired *models.CountDrift
	err := s.run(ctx, "reconcile_counts", func(tx shared.DB) error {
		// a re-run starts from scratch
		repaired = nil

		locked, err := s.lockDevelopers(tx, developerID)
		if err != nil {
			return err
		}
		current, ok := locked[developerID]
		if !ok {
			// deleted since listing
			return nil
		}

		actual, err := s.recount(tx, developerID)
		if err != nil {
			return err
		}
		if actual != current.ProjectsCount {
			repaired = &models.CountDrift{
				DeveloperID:   current.ID,
				DeveloperSlug: current.Slug,
				Stored:        current.ProjectsCount,
				Actual:        actual,
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return repaired, nil
}

// resolveDeveloper turns a reference into a developer row. A name that does
// not exist yet creates the developer with default fields inside tx.
func (s *integrityService) resolveDeveloper(tx shared.DB, ref *shared.DeveloperRef) (*models.Developer, error) {
	if ref.IsEmpty() {
		return nil, nil
	}

	if ref.ID != nil {
		developer, err := s.developerRepository.Read(tx, *ref.ID)
		if err != nil {
			return nil, notFound(err, "developer", *ref.ID)
		}
		return &developer, nil
	}

	// serializes concurrent resolution of the same new name
	if err := database.LockName(tx, "developer:"+ref.Name); err != nil {
		return nil, err
	}

	developer, err := s.developerRepository.FindByName(tx, ref.Name)
	if err == nil {
		return &developer, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	developer = models.Developer{
		Name:   ref.Name,
		Status: models.DeveloperStatusActive,
	}
	if err := s.developerRepository.Create(tx, &developer); err != nil {
		return nil, err
	}
	monitoring.DevelopersAutoCreated.Inc()
	slog.Info("developer created from name reference", "developerID", developer.ID, "name", developer.Name)
	return &developer, nil
}

func (s *integrityService) lockDevelopers(tx shared.DB, ids ...uuid.UUID) (map[uuid.UUID]models.Developer, error) {
	developers, err := s.developerRepository.LockForUpdate(tx, ids...)
	if err != nil {
		return nil, err
	}
	res := make(map[uuid.UUID]models.Developer, len(developers))
	for _, d := range developers {
		res[d.ID] = d
	}
	return res, nil
}

// recount writes the number of projects referencing the developer into its
// projects_count. The caller must hold the developer row lock.
func (s *integrityService) recount(tx shared.DB, developerID uuid.UUID) (int64, error) {
	count, err := s.projectRepository.CountByDeveloperID(tx, developerID)
	if err != nil {
		return 0, err
	}
	return count, s.developerRepository.SetProjectsCount(tx, developerID, count)
}

func notFound(err error, entity string, key any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &shared.NotFoundError{Entity: entity, Key: fmt.Sprint(key), Err: err}
	}
	return err
}
