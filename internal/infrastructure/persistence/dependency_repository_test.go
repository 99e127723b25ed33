package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffhub/backend/internal/domain/shared"
	"github.com/staffhub/backend/internal/infrastructure/persistence/models"
)

func TestGormDependencyRepository_CRUD(t *testing.T) {
	store := setupTestStore(t)
	repo := NewGormDependencyRepository(store)
	ctx := context.Background()

	dep := &models.Dependency{
		Name:             "Redis",
		Category:         models.DependencyCategoryService,
		Version:          "7.2",
		Description:      "In-memory data store",
		DocumentationURL: "https://redis.io/docs",
	}
	require.NoError(t, repo.Create(ctx, dep))
	assert.NotZero(t, dep.ID)

	found, err := repo.FindByID(ctx, dep.ID)
	require.NoError(t, err)
	assert.Equal(t, "Redis", found.Name)
	assert.Equal(t, models.DependencyCategoryService, found.Category)

	require.NoError(t, repo.Update(ctx, dep.ID, map[string]any{"version": "7.4"}))
	found, err = repo.FindByID(ctx, dep.ID)
	require.NoError(t, err)
	assert.Equal(t, "7.4", found.Version)
	assert.Equal(t, "Redis", found.Name)

	require.NoError(t, repo.Delete(ctx, dep.ID))
	_, err = repo.FindByID(ctx, dep.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormDependencyRepository_MissingID(t *testing.T) {
	store := setupTestStore(t)
	repo := NewGormDependencyRepository(store)
	ctx := context.Background()

	_, err := repo.FindByID(ctx, 9999)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, 9999, map[string]any{"name": "x"}), shared.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, 9999), shared.ErrNotFound)
}

func TestGormDependencyRepository_List(t *testing.T) {
	store := setupTestStore(t)
	repo := NewGormDependencyRepository(store)
	ctx := context.Background()

	deps, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, deps)

	require.NoError(t, repo.Create(ctx, &models.Dependency{Name: "gin", Category: models.DependencyCategoryFramework}))
	require.NoError(t, repo.Create(ctx, &models.Dependency{Name: "zap", Category: models.DependencyCategoryLibrary}))

	deps, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, deps, 2)
}
