package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffhub/backend/internal/domain/shared"
	"github.com/staffhub/backend/internal/infrastructure/persistence/models"
)

func TestGormProjectRepository_CreateAndFind(t *testing.T) {
	store := setupTestStore(t)
	repo := NewGormProjectRepository(store)
	ctx := context.Background()

	user := createTestUser(t, store, "jon")
	creator := createTestEmployee(t, store, user.ID, "Jon Creator")

	project := &models.Project{
		Name:        "Billing Revamp",
		Description: "Rework invoice generation",
		RepoURL:     "https://git.example.com/billing",
		Status:      models.ProjectStatusPlanning,
		CreatedBy:   creator.ID,
	}
	require.NoError(t, repo.Create(ctx, project))
	assert.NotZero(t, project.ID)

	row, err := repo.FindByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, "Billing Revamp", row.Name)
	assert.Equal(t, models.ProjectStatusPlanning, row.Status)
	require.NotNil(t, row.CreatorName)
	assert.Equal(t, "Jon Creator", *row.CreatorName)
}

func TestGormProjectRepository_Create_UnknownCreator(t *testing.T) {
	store := setupTestStore(t)
	repo := NewGormProjectRepository(store)

	err := repo.Create(context.Background(), &models.Project{
		Name:      "Orphan",
		Status:    models.ProjectStatusPlanning,
		CreatedBy: 9999,
	})
	assert.ErrorIs(t, err, shared.ErrRelationViolated)
}

func TestGormProjectRepository_UpdateAndDelete(t *testing.T) {
	store := setupTestStore(t)
	repo := NewGormProjectRepository(store)
	ctx := context.Background()

	user := createTestUser(t, store, "kim")
	creator := createTestEmployee(t, store, user.ID, "Kim")
	project := createTestProject(t, store, creator.ID, "Lifecycle")

	require.NoError(t, repo.Update(ctx, project.ID, map[string]any{
		"status": models.ProjectStatusCompleted,
	}))
	row, err := repo.FindByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProjectStatusCompleted, row.Status)

	assert.ErrorIs(t, repo.Update(ctx, 9999, map[string]any{"name": "x"}), shared.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, project.ID))
	_, err = repo.FindByID(ctx, project.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, project.ID), shared.ErrNotFound)
}

func TestGormProjectRepository_Members(t *testing.T) {
	store := setupTestStore(t)
	repo := NewGormProjectRepository(store)
	ctx := context.Background()

	user := createTestUser(t, store, "lia")
	creator := createTestEmployee(t, store, user.ID, "Lia")
	dev := createTestEmployee(t, store, user.ID, "Dev One")
	project := createTestProject(t, store, creator.ID, "Teamwork")

	require.NoError(t, repo.AddMember(ctx, &models.ProjectMember{
		ProjectID:  project.ID,
		EmployeeID: dev.ID,
		Role:       "developer",
	}))

	t.Run("duplicate pair is rejected", func(t *testing.T) {
		err := repo.AddMember(ctx, &models.ProjectMember{
			ProjectID:  project.ID,
			EmployeeID: dev.ID,
			Role:       "tech lead",
		})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)

		members, err := repo.ListMembers(ctx, project.ID)
		require.NoError(t, err)
		require.Len(t, members, 1)
		assert.Equal(t, "developer", members[0].Role)
	})

	t.Run("rows carry employee display fields", func(t *testing.T) {
		members, err := repo.ListMembers(ctx, project.ID)
		require.NoError(t, err)
		require.Len(t, members, 1)
		require.NotNil(t, members[0].EmployeeName)
		assert.Equal(t, "Dev One", *members[0].EmployeeName)
	})

	t.Run("remove by composite key", func(t *testing.T) {
		require.NoError(t, repo.RemoveMember(ctx, project.ID, dev.ID))
		assert.ErrorIs(t, repo.RemoveMember(ctx, project.ID, dev.ID), shared.ErrNotFound)
	})
}

func TestGormProjectRepository_Dependencies(t *testing.T) {
	store := setupTestStore(t)
	repo := NewGormProjectRepository(store)
	catalog := NewGormDependencyRepository(store)
	ctx := context.Background()

	user := createTestUser(t, store, "mia")
	creator := createTestEmployee(t, store, user.ID, "Mia")
	project := createTestProject(t, store, creator.ID, "Stacked")

	dep := &models.Dependency{
		Name:     "PostgreSQL",
		Category: models.DependencyCategoryService,
		Version:  "16",
	}
	require.NoError(t, catalog.Create(ctx, dep))

	require.NoError(t, repo.AddDependency(ctx, &models.ProjectDependency{
		ProjectID:    project.ID,
		DependencyID: dep.ID,
		VersionUsed:  "16.2",
	}))

	t.Run("duplicate pair is rejected", func(t *testing.T) {
		err := repo.AddDependency(ctx, &models.ProjectDependency{
			ProjectID:    project.ID,
			DependencyID: dep.ID,
		})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("rows carry catalog display fields", func(t *testing.T) {
		links, err := repo.ListDependencies(ctx, project.ID)
		require.NoError(t, err)
		require.Len(t, links, 1)
		assert.Equal(t, "16.2", links[0].VersionUsed)
		require.NotNil(t, links[0].DependencyName)
		assert.Equal(t, "PostgreSQL", *links[0].DependencyName)
	})

	t.Run("project delete cascades links", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, project.ID))

		links, err := repo.ListDependencies(ctx, project.ID)
		require.NoError(t, err)
		assert.Empty(t, links)

		// Catalog entry outlives the link.
		_, err = catalog.FindByID(ctx, dep.ID)
		assert.NoError(t, err)
	})

	t.Run("remove missing link", func(t *testing.T) {
		assert.ErrorIs(t, repo.RemoveDependency(ctx, project.ID, dep.ID), shared.ErrNotFound)
	})
}
