package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffhub/backend/internal/domain/shared"
	"github.com/staffhub/backend/internal/infrastructure/persistence/models"
)

func TestGormIntegrationRepository_Upsert(t *testing.T) {
	store := setupTestStore(t)
	repo := NewGormIntegrationRepository(store)
	ctx := context.Background()

	user := createTestUser(t, store, "nina")
	employee := createTestEmployee(t, store, user.ID, "Nina")

	expires := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	require.NoError(t, repo.Upsert(ctx, &models.CommunicationIntegration{
		EmployeeID:     employee.ID,
		Platform:       models.IntegrationPlatformGitHub,
		ExternalID:     "octo-nina",
		AccessToken:    "tok-1",
		TokenExpiresAt: &expires,
	}))

	t.Run("second upsert overwrites credentials", func(t *testing.T) {
		require.NoError(t, repo.Upsert(ctx, &models.CommunicationIntegration{
			EmployeeID:   employee.ID,
			Platform:     models.IntegrationPlatformGitHub,
			ExternalID:   "octo-nina-2",
			AccessToken:  "tok-2",
			RefreshToken: "ref-2",
		}))

		records, err := repo.ListByEmployee(ctx, employee.ID)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "octo-nina-2", records[0].ExternalID)
		assert.Equal(t, "tok-2", records[0].AccessToken)
		assert.Equal(t, "ref-2", records[0].RefreshToken)
	})

	t.Run("platforms are independent records", func(t *testing.T) {
		require.NoError(t, repo.Upsert(ctx, &models.CommunicationIntegration{
			EmployeeID: employee.ID,
			Platform:   models.IntegrationPlatformSlack,
			ExternalID: "U777",
		}))

		records, err := repo.ListByEmployee(ctx, employee.ID)
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})
}

func TestGormIntegrationRepository_Upsert_UnknownEmployee(t *testing.T) {
	store := setupTestStore(t)
	repo := NewGormIntegrationRepository(store)

	err := repo.Upsert(context.Background(), &models.CommunicationIntegration{
		EmployeeID: 9999,
		Platform:   models.IntegrationPlatformManus,
	})
	assert.ErrorIs(t, err, shared.ErrRelationViolated)
}

func TestGormIntegrationRepository_Delete(t *testing.T) {
	store := setupTestStore(t)
	repo := NewGormIntegrationRepository(store)
	ctx := context.Background()

	user := createTestUser(t, store, "omar")
	employee := createTestEmployee(t, store, user.ID, "Omar")

	require.NoError(t, repo.Upsert(ctx, &models.CommunicationIntegration{
		EmployeeID: employee.ID,
		Platform:   models.IntegrationPlatformSlack,
	}))

	require.NoError(t, repo.Delete(ctx, employee.ID, models.IntegrationPlatformSlack))
	assert.ErrorIs(t, repo.Delete(ctx, employee.ID, models.IntegrationPlatformSlack), shared.ErrNotFound)

	records, err := repo.ListByEmployee(ctx, employee.ID)
	require.NoError(t, err)
	assert.Empty(t, records)
}
