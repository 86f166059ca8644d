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
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/iscandes/web-sub000/database"
	"github.com/iscandes/web-sub000/database/models"
	"github.com/iscandes/web-sub000/database/repositories"
	"github.com/iscandes/web-sub000/dtos"
	"github.com/iscandes/web-sub000/integrationtestutil"
	"github.com/iscandes/web-sub000/shared"
	"github.com/iscandes/web-sub000/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func newTestIntegrityService(db shared.DB) *integrityService {
	return NewIntegrityService(
		database.NewStore(db).WithLockTimeout(5*time.Second),
		repositories.NewDeveloperRepository(db),
		repositories.NewProjectRepository(db),
		IntegrityConfig{
			MaxRetries:           10,
			InitialInterval:      5 * time.Millisecond,
			MaxInterval:          50 * time.Millisecond,
			ReconcileConcurrency: 4,
		},
	)
}

func truncate(t *testing.T, db shared.DB) {
	t.Helper()
	require.Nil(t, db.Exec("TRUNCATE projects, developers").Error)
}

func createProject(t *testing.T, s *integrityService, name string, developerName *string) models.Project {
	t.Helper()
	project, err := s.CreateProject(context.Background(), dtos.ProjectCreateRequest{
		Name:          name,
		Description:   "description of " + name,
		DeveloperName: developerName,
	})
	require.Nil(t, err)
	return project
}

func readDeveloper(t *testing.T, s *integrityService, id uuid.UUID) models.Developer {
	t.Helper()
	developer, err := s.GetDeveloper(context.Background(), id)
	require.Nil(t, err)
	return developer
}

// assertCountsMatch checks every developer's projects_count against the
// projects table.
func assertCountsMatch(t *testing.T, db shared.DB) {
	t.Helper()
	var drift []models.CountDrift
	err := db.Raw(`
		SELECT d.id AS developer_id, d.slug AS developer_slug, d.projects_count AS stored, COUNT(p.id) AS actual
		FROM developers d LEFT JOIN projects p ON p.developer_id = d.id
		GROUP BY d.id HAVING d.projects_count <> COUNT(p.id)`).Scan(&drift).Error
	require.Nil(t, err)
	assert.Empty(t, drift)
}

func TestIntegrityServiceScenarios(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, terminate := integrationtestutil.InitDatabaseContainer()
	defer terminate()

	s := newTestIntegrityService(db)
	ctx := context.Background()

	t.Run("should create the developer from a name reference", func(t *testing.T) {
		truncate(t, db)

		project := createProject(t, s, "Tower A", utils.Ptr("Acme"))

		developers, err := s.ListDevelopers(ctx)
		require.Nil(t, err)
		require.Len(t, developers, 1)
		acme := developers[0]
		assert.Equal(t, "Acme", acme.Name)
		assert.Equal(t, "acme", acme.Slug)
		assert.Equal(t, models.DeveloperStatusActive, acme.Status)
		assert.Equal(t, int64(1), acme.ProjectsCount)

		assert.Equal(t, &acme.ID, project.DeveloperID)
		assert.Equal(t, "Acme", project.DeveloperName)
		assertCountsMatch(t, db)
	})

	t.Run("should move the count when reassigning to a new developer name", func(t *testing.T) {
		truncate(t, db)

		project := createProject(t, s, "Tower A", utils.Ptr("Acme"))
		acmeID := *project.DeveloperID

		res, err := s.Assign(ctx, project.ID, shared.DeveloperRefByName("Beta"))
		require.Nil(t, err)

		require.NotNil(t, res.OldDeveloper)
		require.NotNil(t, res.NewDeveloper)
		assert.Equal(t, acmeID, res.OldDeveloper.ID)
		assert.Equal(t, int64(0), res.OldDeveloper.ProjectsCount)
		assert.Equal(t, "Beta", res.NewDeveloper.Name)
		assert.Equal(t, int64(1), res.NewDeveloper.ProjectsCount)

		assert.Equal(t, &res.NewDeveloper.ID, res.Project.DeveloperID)
		assert.Equal(t, "Beta", res.Project.DeveloperName)

		assert.Equal(t, int64(0), readDeveloper(t, s, acmeID).ProjectsCount)
		assert.Equal(t, int64(1), readDeveloper(t, s, res.NewDeveloper.ID).ProjectsCount)
		assertCountsMatch(t, db)
	})

	t.Run("should remove all projects of a deleted developer", func(t *testing.T) {
		truncate(t, db)

		developer, err := s.CreateDeveloper(ctx, dtos.DeveloperCreateRequest{Name: "Acme"})
		require.Nil(t, err)
		for i := range 3 {
			_, err := s.CreateProject(ctx, dtos.ProjectCreateRequest{
				Name:        fmt.Sprintf("Tower %d", i),
				Description: "x",
				DeveloperID: &developer.ID,
			})
			require.Nil(t, err)
		}
		unrelated := createProject(t, s, "Unrelated", nil)
		assert.Equal(t, int64(3), readDeveloper(t, s, developer.ID).ProjectsCount)

		res, err := s.DeleteDeveloper(ctx, developer.ID)
		require.Nil(t, err)
		assert.Equal(t, int64(3), res.DeletedProjectCount)

		var remaining int64
		require.Nil(t, db.Model(&models.Project{}).Where("developer_id = ?", developer.ID).Count(&remaining).Error)
		assert.Zero(t, remaining)

		_, err = s.GetDeveloper(ctx, developer.ID)
		assert.True(t, shared.IsNotFound(err))

		_, err = s.GetProject(ctx, unrelated.ID)
		assert.Nil(t, err)
	})

	t.Run("should be a no-op to assign the current developer again", func(t *testing.T) {
		truncate(t, db)

		project := createProject(t, s, "Tower A", utils.Ptr("Acme"))
		first, err := s.Assign(ctx, project.ID, shared.DeveloperRefByID(*project.DeveloperID))
		require.Nil(t, err)
		second, err := s.Assign(ctx, project.ID, shared.DeveloperRefByName("Acme"))
		require.Nil(t, err)

		assert.Equal(t, first.Project.DeveloperID, second.Project.DeveloperID)
		assert.Equal(t, int64(1), readDeveloper(t, s, *project.DeveloperID).ProjectsCount)

		developers, err := s.ListDevelopers(ctx)
		require.Nil(t, err)
		assert.Len(t, developers, 1)
		assertCountsMatch(t, db)
	})

	t.Run("should unassign a project", func(t *testing.T) {
		truncate(t, db)

		project := createProject(t, s, "Tower A", utils.Ptr("Acme"))
		res, err := s.Assign(ctx, project.ID, nil)
		require.Nil(t, err)

		assert.Nil(t, res.Project.DeveloperID)
		assert.Empty(t, res.Project.DeveloperName)
		assert.Nil(t, res.NewDeveloper)
		assert.Equal(t, int64(0), res.OldDeveloper.ProjectsCount)
		assertCountsMatch(t, db)
	})

	t.Run("should delete a project and recount its developer", func(t *testing.T) {
		truncate(t, db)

		a := createProject(t, s, "Tower A", utils.Ptr("Acme"))
		createProject(t, s, "Tower B", utils.Ptr("Acme"))

		res, err := s.DeleteProject(ctx, a.ID)
		require.Nil(t, err)
		assert.True(t, res.Deleted)
		assert.Equal(t, int64(1), readDeveloper(t, s, *a.DeveloperID).ProjectsCount)

		res, err = s.DeleteProject(ctx, a.ID)
		require.Nil(t, err)
		assert.False(t, res.Deleted)
		assertCountsMatch(t, db)
	})

	t.Run("should report nothing deleted for an unknown project", func(t *testing.T) {
		res, err := s.DeleteProject(ctx, uuid.New())
		assert.Nil(t, err)
		assert.False(t, res.Deleted)
	})

	t.Run("should change ownership through a project update", func(t *testing.T) {
		truncate(t, db)

		project := createProject(t, s, "Tower A", utils.Ptr("Acme"))
		acmeID := *project.DeveloperID

		updated, err := s.UpdateProject(ctx, project.ID, dtos.ProjectPatchRequest{
			Name:          utils.Ptr("Tower A East"),
			DeveloperName: utils.Ptr("Beta"),
		})
		require.Nil(t, err)
		assert.Equal(t, "Tower A East", updated.Name)
		assert.Equal(t, "tower-a", updated.Slug)
		assert.Equal(t, "Beta", updated.DeveloperName)
		assert.Equal(t, int64(0), readDeveloper(t, s, acmeID).ProjectsCount)

		updated, err = s.UpdateProject(ctx, project.ID, dtos.ProjectPatchRequest{DeveloperName: utils.Ptr("")})
		require.Nil(t, err)
		assert.Nil(t, updated.DeveloperID)
		assert.Empty(t, updated.DeveloperName)

		updated, err = s.UpdateProject(ctx, project.ID, dtos.ProjectPatchRequest{DeveloperID: &acmeID})
		require.Nil(t, err)
		assert.Equal(t, &acmeID, updated.DeveloperID)
		assert.Equal(t, int64(1), readDeveloper(t, s, acmeID).ProjectsCount)
		assertCountsMatch(t, db)
	})

	t.Run("should keep ownership on a plain field update", func(t *testing.T) {
		truncate(t, db)

		project := createProject(t, s, "Tower A", utils.Ptr("Acme"))
		updated, err := s.UpdateProject(ctx, project.ID, dtos.ProjectPatchRequest{
			Features: &[]string{"pool", "gym"},
			Media:    &[]dtos.MediaReference{{URL: "https://cdn.example.com/a.jpg", Type: "image"}},
		})
		require.Nil(t, err)
		assert.Equal(t, project.DeveloperID, updated.DeveloperID)
		assert.Equal(t, "Acme", updated.DeveloperName)

		reloaded, err := s.GetProject(ctx, project.ID)
		require.Nil(t, err)
		assert.Equal(t, []string{"pool", "gym"}, []string(reloaded.Features))
		assert.JSONEq(t, `[{"url":"https://cdn.example.com/a.jpg","type":"image","title":""}]`, string(reloaded.Media))
	})

	t.Run("should propagate a developer rename to its projects", func(t *testing.T) {
		truncate(t, db)

		a := createProject(t, s, "Tower A", utils.Ptr("Acme"))
		createProject(t, s, "Tower B", utils.Ptr("Acme"))
		other := createProject(t, s, "Tower C", utils.Ptr("Beta"))

		renamed, err := s.UpdateDeveloper(ctx, *a.DeveloperID, dtos.DeveloperPatchRequest{Name: utils.Ptr("Acme Holdings")})
		require.Nil(t, err)
		assert.Equal(t, "acme", renamed.Slug)
		assert.Equal(t, int64(2), renamed.ProjectsCount)

		projects, err := s.ListProjectsByDeveloper(ctx, *a.DeveloperID)
		require.Nil(t, err)
		require.Len(t, projects, 2)
		for _, p := range projects {
			assert.Equal(t, "Acme Holdings", p.DeveloperName)
		}

		reloaded, err := s.GetProject(ctx, other.ID)
		require.Nil(t, err)
		assert.Equal(t, "Beta", reloaded.DeveloperName)
	})

	t.Run("should append a numeric suffix to taken slugs", func(t *testing.T) {
		truncate(t, db)

		first := createProject(t, s, "Tower A", nil)
		second := createProject(t, s, "Tower A", nil)
		third := createProject(t, s, "tower a", nil)
		assert.Equal(t, "tower-a", first.Slug)
		assert.Equal(t, "tower-a-1", second.Slug)
		assert.Equal(t, "tower-a-2", third.Slug)

		d1, err := s.CreateDeveloper(ctx, dtos.DeveloperCreateRequest{Name: "Acme"})
		require.Nil(t, err)
		d2, err := s.CreateDeveloper(ctx, dtos.DeveloperCreateRequest{Name: "Acme"})
		require.Nil(t, err)
		assert.Equal(t, "acme", d1.Slug)
		assert.Equal(t, "acme-1", d2.Slug)
	})

	t.Run("should resolve a duplicated name to the oldest developer", func(t *testing.T) {
		truncate(t, db)

		oldest, err := s.CreateDeveloper(ctx, dtos.DeveloperCreateRequest{Name: "Acme"})
		require.Nil(t, err)
		_, err = s.CreateDeveloper(ctx, dtos.DeveloperCreateRequest{Name: "Acme"})
		require.Nil(t, err)

		project := createProject(t, s, "Tower A", utils.Ptr("Acme"))
		assert.Equal(t, &oldest.ID, project.DeveloperID)
	})

	t.Run("should reject invalid input without writing", func(t *testing.T) {
		truncate(t, db)

		_, err := s.CreateProject(ctx, dtos.ProjectCreateRequest{Name: "   ", Description: "x", DeveloperName: utils.Ptr("Acme")})
		assert.True(t, shared.IsValidation(err))

		_, err = s.CreateProject(ctx, dtos.ProjectCreateRequest{Name: "Tower A", Description: ""})
		assert.True(t, shared.IsValidation(err))

		developers, err := s.ListDevelopers(ctx)
		require.Nil(t, err)
		assert.Empty(t, developers)

		project := createProject(t, s, "Tower A", nil)
		_, err = s.UpdateProject(ctx, project.ID, dtos.ProjectPatchRequest{Description: utils.Ptr(" ")})
		assert.True(t, shared.IsValidation(err))

		_, err = s.CreateDeveloper(ctx, dtos.DeveloperCreateRequest{Name: "Acme", Status: "retired"})
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("should report unknown references as not found", func(t *testing.T) {
		truncate(t, db)

		project := createProject(t, s, "Tower A", nil)

		_, err := s.Assign(ctx, project.ID, shared.DeveloperRefByID(uuid.New()))
		assert.True(t, shared.IsNotFound(err))

		_, err = s.Assign(ctx, uuid.New(), shared.DeveloperRefByName("Acme"))
		assert.True(t, shared.IsNotFound(err))

		_, err = s.CreateProject(ctx, dtos.ProjectCreateRequest{Name: "Tower B", Description: "x", DeveloperID: utils.Ptr(uuid.New())})
		assert.True(t, shared.IsNotFound(err))

		_, err = s.DeleteDeveloper(ctx, uuid.New())
		assert.True(t, shared.IsNotFound(err))

		_, err = s.UpdateProject(ctx, uuid.New(), dtos.ProjectPatchRequest{Name: utils.Ptr("x")})
		assert.True(t, shared.IsNotFound(err))

		// the failed name lookup above ran in a rolled back transaction
		developers, err := s.ListDevelopers(ctx)
		require.Nil(t, err)
		assert.Empty(t, developers)
	})
}

func TestIntegrityServiceKeepsCountsOverOperationSequence(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, terminate := integrationtestutil.InitDatabaseContainer()
	defer terminate()

	s := newTestIntegrityService(db)
	ctx := context.Background()
	rnd := rand.New(rand.NewPCG(42, 7))
	names := []string{"Acme", "Beta", "Gamma", "Delta"}

	var projectIDs []uuid.UUID
	for i := range 200 {
		switch op := rnd.IntN(6); {
		case op <= 1 || len(projectIDs) == 0:
			var developerName *string
			if rnd.IntN(4) > 0 {
				developerName = utils.Ptr(names[rnd.IntN(len(names))])
			}
			project := createProject(t, s, fmt.Sprintf("Project %d", i), developerName)
			projectIDs = append(projectIDs, project.ID)
		case op == 2:
			var ref *shared.DeveloperRef
			if rnd.IntN(5) > 0 {
				ref = shared.DeveloperRefByName(names[rnd.IntN(len(names))])
			}
			_, err := s.Assign(ctx, projectIDs[rnd.IntN(len(projectIDs))], ref)
			require.Nil(t, err)
		case op == 3:
			idx := rnd.IntN(len(projectIDs))
			_, err := s.DeleteProject(ctx, projectIDs[idx])
			require.Nil(t, err)
			projectIDs = append(projectIDs[:idx], projectIDs[idx+1:]...)
		case op == 4:
			developers, err := s.ListDevelopers(ctx)
			require.Nil(t, err)
			if len(developers) == 0 || rnd.IntN(4) > 0 {
				continue
			}
			_, err = s.DeleteDeveloper(ctx, developers[rnd.IntN(len(developers))].ID)
			require.Nil(t, err)
			projectIDs = remainingProjectIDs(t, db)
		default:
			developers, err := s.ListDevelopers(ctx)
			require.Nil(t, err)
			if len(developers) == 0 {
				continue
			}
			_, err = s.UpdateProject(ctx, projectIDs[rnd.IntN(len(projectIDs))], dtos.ProjectPatchRequest{
				DeveloperID: &developers[rnd.IntN(len(developers))].ID,
				Status:      utils.Ptr("on sale"),
			})
			require.Nil(t, err)
		}

		assertCountsMatch(t, db)
	}

	drift, err := s.VerifyCounts(ctx)
	require.Nil(t, err)
	assert.Empty(t, drift)
}

func remainingProjectIDs(t *testing.T, db shared.DB) []uuid.UUID {
	t.Helper()
	var ids []uuid.UUID
	require.Nil(t, db.Model(&models.Project{}).Order("created_at").Pluck("id", &ids).Error)
	return ids
}

func TestIntegrityServiceCascadeIsAtomic(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, terminate := integrationtestutil.InitDatabaseContainer()
	defer terminate()

	s := newTestIntegrityService(db)
	ctx := context.Background()

	developer, err := s.CreateDeveloper(ctx, dtos.DeveloperCreateRequest{Name: "Acme"})
	require.Nil(t, err)
	for i := range 3 {
		_, err := s.CreateProject(ctx, dtos.ProjectCreateRequest{Name: fmt.Sprintf("Tower %d", i), Description: "x", DeveloperID: &developer.ID})
		require.Nil(t, err)
	}

	// fail the developer row delete after its projects are already gone
	require.Nil(t, db.Exec(`CREATE FUNCTION refuse_developer_delete() RETURNS trigger AS $$
BEGIN
	RAISE EXCEPTION 'developer delete refused';
END;
$$ LANGUAGE plpgsql`).Error)
	require.Nil(t, db.Exec(`CREATE TRIGGER refuse_developer_delete BEFORE DELETE ON developers FOR EACH ROW EXECUTE FUNCTION refuse_developer_delete()`).Error)

	_, err = s.DeleteDeveloper(ctx, developer.ID)
	assert.True(t, shared.IsFatal(err))

	projects, err := s.ListProjectsByDeveloper(ctx, developer.ID)
	require.Nil(t, err)
	assert.Len(t, projects, 3)
	assert.Equal(t, int64(3), readDeveloper(t, s, developer.ID).ProjectsCount)

	require.Nil(t, db.Exec("DROP TRIGGER refuse_developer_delete ON developers").Error)

	res, err := s.DeleteDeveloper(ctx, developer.ID)
	require.Nil(t, err)
	assert.Equal(t, int64(3), res.DeletedProjectCount)
}

func TestIntegrityServiceConcurrency(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, terminate := integrationtestutil.InitDatabaseContainer()
	defer terminate()

	s := newTestIntegrityService(db)
	ctx := context.Background()

	t.Run("should swap projects between two developers without deadlocking", func(t *testing.T) {
		truncate(t, db)

		p1 := createProject(t, s, "Tower A", utils.Ptr("Acme"))
		p2 := createProject(t, s, "Tower B", utils.Ptr("Beta"))
		acme, beta := *p1.DeveloperID, *p2.DeveloperID

		for range 20 {
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				_, err := s.Assign(gctx, p1.ID, shared.DeveloperRefByID(beta))
				return err
			})
			g.Go(func() error {
				_, err := s.Assign(gctx, p2.ID, shared.DeveloperRefByID(acme))
				return err
			})
			require.Nil(t, g.Wait())
			assertCountsMatch(t, db)

			acme, beta = beta, acme
		}
	})

	t.Run("should allocate distinct slugs for concurrent creations without retrying", func(t *testing.T) {
		truncate(t, db)

		// no retries: a single lost slug race would surface as an error
		noRetry := NewIntegrityService(
			database.NewStore(db).WithLockTimeout(5*time.Second),
			repositories.NewDeveloperRepository(db),
			repositories.NewProjectRepository(db),
			IntegrityConfig{MaxRetries: 0, InitialInterval: time.Millisecond, MaxInterval: time.Millisecond, ReconcileConcurrency: 1},
		)

		g, gctx := errgroup.WithContext(ctx)
		for i := range 10 {
			g.Go(func() error {
				_, err := noRetry.CreateProject(gctx, dtos.ProjectCreateRequest{
					Name:        "Tower A",
					Description: fmt.Sprintf("tower %d", i),
				})
				return err
			})
			g.Go(func() error {
				_, err := noRetry.CreateDeveloper(gctx, dtos.DeveloperCreateRequest{Name: "Acme"})
				return err
			})
		}
		require.Nil(t, g.Wait())

		var projectSlugs, developerSlugs []string
		require.Nil(t, db.Model(&models.Project{}).Pluck("slug", &projectSlugs).Error)
		require.Nil(t, db.Model(&models.Developer{}).Pluck("slug", &developerSlugs).Error)
		suffixed := func(base string) []string {
			return utils.Map([]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, func(i int) string {
				if i == 0 {
					return base
				}
				return fmt.Sprintf("%s-%d", base, i)
			})
		}
		assert.ElementsMatch(t, suffixed("tower-a"), projectSlugs)
		assert.ElementsMatch(t, suffixed("acme"), developerSlugs)
	})

	t.Run("should create a developer only once for concurrent name references", func(t *testing.T) {
		truncate(t, db)

		g, gctx := errgroup.WithContext(ctx)
		for i := range 10 {
			g.Go(func() error {
				_, err := s.CreateProject(gctx, dtos.ProjectCreateRequest{
					Name:          "Tower",
					Description:   fmt.Sprintf("tower %d", i),
					DeveloperName: utils.Ptr("Gamma"),
				})
				return err
			})
		}
		require.Nil(t, g.Wait())

		developers, err := s.ListDevelopers(ctx)
		require.Nil(t, err)
		require.Len(t, developers, 1)
		assert.Equal(t, int64(10), developers[0].ProjectsCount)

		var slugs []string
		require.Nil(t, db.Model(&models.Project{}).Pluck("slug", &slugs).Error)
		assert.Len(t, slugs, 10)
		assert.ElementsMatch(t, utils.Map([]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, func(i int) string {
			if i == 0 {
				return "tower"
			}
			return fmt.Sprintf("tower-%d", i)
		}), slugs)
	})

	t.Run("should keep counts when reassigning and deleting concurrently", func(t *testing.T) {
		truncate(t, db)

		var projectIDs []uuid.UUID
		for i := range 6 {
			projectIDs = append(projectIDs, createProject(t, s, fmt.Sprintf("Tower %d", i), utils.Ptr("Acme")).ID)
		}
		acme, err := s.GetProject(ctx, projectIDs[0])
		require.Nil(t, err)

		g, gctx := errgroup.WithContext(ctx)
		for _, id := range projectIDs[:3] {
			g.Go(func() error {
				// the cascade may win and take the project with it
				_, err := s.Assign(gctx, id, shared.DeveloperRefByName("Beta"))
				if shared.IsNotFound(err) {
					return nil
				}
				return err
			})
		}
		g.Go(func() error {
			_, err := s.DeleteDeveloper(gctx, *acme.DeveloperID)
			return err
		})
		require.Nil(t, g.Wait())

		assertCountsMatch(t, db)
		var owned int64
		require.Nil(t, db.Model(&models.Project{}).Where("developer_id = ?", *acme.DeveloperID).Count(&owned).Error)
		assert.Zero(t, owned)
	})
}

func TestIntegrityServiceReconcileCounts(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, terminate := integrationtestutil.InitDatabaseContainer()
	defer terminate()

	s := newTestIntegrityService(db)
	ctx := context.Background()

	a := createProject(t, s, "Tower A", utils.Ptr("Acme"))
	createProject(t, s, "Tower B", utils.Ptr("Acme"))
	b := createProject(t, s, "Tower C", utils.Ptr("Beta"))
	createProject(t, s, "Tower D", nil)

	// corrupt the stored counts behind the engine's back
	require.Nil(t, db.Exec("UPDATE developers SET projects_count = 7 WHERE id = ?", *a.DeveloperID).Error)
	require.Nil(t, db.Exec("UPDATE developers SET projects_count = 0 WHERE id = ?", *b.DeveloperID).Error)

	drift, err := s.VerifyCounts(ctx)
	require.Nil(t, err)
	assert.Len(t, drift, 2)

	repaired, err := s.ReconcileCounts(ctx)
	require.Nil(t, err)
	require.Len(t, repaired, 2)
	for _, d := range repaired {
		switch d.DeveloperID {
		case *a.DeveloperID:
			assert.Equal(t, int64(7), d.Stored)
			assert.Equal(t, int64(2), d.Actual)
		case *b.DeveloperID:
			assert.Equal(t, int64(0), d.Stored)
			assert.Equal(t, int64(1), d.Actual)
		}
	}

	drift, err = s.VerifyCounts(ctx)
	require.Nil(t, err)
	assert.Empty(t, drift)

	repaired, err = s.ReconcileCounts(ctx)
	require.Nil(t, err)
	assert.Empty(t, repaired)
}

// cancelingProjectRepository cancels the operation right after the ownership
// write, before the counts are recomputed.
type cancelingProjectRepository struct {
	shared.ProjectRepository
	cancel context.CancelFunc
}

func (r cancelingProjectRepository) SetDeveloper(tx shared.DB, projectID uuid.UUID, developerID *uuid.UUID, developerName string) error {
	if err := r.ProjectRepository.SetDeveloper(tx, projectID, developerID, developerName); err != nil {
		return err
	}
	r.cancel()
	return nil
}

func TestIntegrityServiceAbortsWithoutPartialWrites(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, terminate := integrationtestutil.InitDatabaseContainer()
	defer terminate()

	s := newTestIntegrityService(db)
	ctx := context.Background()

	t.Run("should roll back a reassignment canceled before the recount", func(t *testing.T) {
		truncate(t, db)

		project := createProject(t, s, "Tower A", utils.Ptr("Acme"))
		other := createProject(t, s, "Tower B", utils.Ptr("Beta"))
		acmeID, betaID := *project.DeveloperID, *other.DeveloperID

		opCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		canceling := NewIntegrityService(
			database.NewStore(db).WithLockTimeout(5*time.Second),
			repositories.NewDeveloperRepository(db),
			cancelingProjectRepository{ProjectRepository: repositories.NewProjectRepository(db), cancel: cancel},
			IntegrityConfig{MaxRetries: 3, InitialInterval: time.Millisecond, MaxInterval: time.Millisecond, ReconcileConcurrency: 1},
		)

		_, err := canceling.Assign(opCtx, project.ID, shared.DeveloperRefByID(betaID))
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, shared.IsFatal(err))

		reloaded, err := s.GetProject(ctx, project.ID)
		require.Nil(t, err)
		assert.Equal(t, &acmeID, reloaded.DeveloperID)
		assert.Equal(t, "Acme", reloaded.DeveloperName)
		assert.Equal(t, int64(1), readDeveloper(t, s, acmeID).ProjectsCount)
		assert.Equal(t, int64(1), readDeveloper(t, s, betaID).ProjectsCount)
		assertCountsMatch(t, db)
	})

	t.Run("should not start a transaction for an already canceled context", func(t *testing.T) {
		truncate(t, db)

		canceled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := s.CreateProject(canceled, dtos.ProjectCreateRequest{Name: "Tower A", Description: "x", DeveloperName: utils.Ptr("Acme")})
		assert.ErrorIs(t, err, context.Canceled)

		developers, err := s.ListDevelopers(ctx)
		require.Nil(t, err)
		assert.Empty(t, developers)
	})

	t.Run("should report a lock wait beyond the lock timeout as transient", func(t *testing.T) {
		truncate(t, db)

		project := createProject(t, s, "Tower A", utils.Ptr("Acme"))
		other := createProject(t, s, "Tower B", utils.Ptr("Beta"))
		acmeID, betaID := *project.DeveloperID, *other.DeveloperID

		// a foreign transaction holds the target developer row
		holder := db.Begin()
		require.Nil(t, holder.Error)
		require.Nil(t, holder.Exec("SELECT id FROM developers WHERE id = ? FOR UPDATE", betaID).Error)

		impatient := NewIntegrityService(
			database.NewStore(db).WithLockTimeout(100*time.Millisecond),
			repositories.NewDeveloperRepository(db),
			repositories.NewProjectRepository(db),
			IntegrityConfig{MaxRetries: 2, InitialInterval: 5 * time.Millisecond, MaxInterval: 10 * time.Millisecond, ReconcileConcurrency: 1},
		)

		_, err := impatient.Assign(ctx, project.ID, shared.DeveloperRefByID(betaID))
		assert.True(t, shared.IsTransient(err))

		reloaded, err := s.GetProject(ctx, project.ID)
		require.Nil(t, err)
		assert.Equal(t, &acmeID, reloaded.DeveloperID)

		require.Nil(t, holder.Rollback().Error)

		res, err := impatient.Assign(ctx, project.ID, shared.DeveloperRefByID(betaID))
		require.Nil(t, err)
		assert.Equal(t, int64(0), res.OldDeveloper.ProjectsCount)
		assert.Equal(t, int64(2), res.NewDeveloper.ProjectsCount)
		assertCountsMatch(t, db)
	})
}
