package schedule

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jobsight/jobsight/internal/test_utils"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

var pgContainer *postgres.PostgresContainer
var openDb func() *pgxpool.Pool

func TestMain(m *testing.M) {
	pgContainer, openDb = test_utils.TestWithDB()
	defer func() {
		if err := testcontainers.TerminateContainer(pgContainer); err != nil {
			log.Errorf("failed to terminate container: %s", err)
		}
	}()
	code := m.Run()
	os.Exit(code)
}

func setupTestRepository(t *testing.T) (context.Context, *RepositoryImpl, int, int64) {
	ctx := context.Background()
	db := openDb()
	repository := NewRepository(db)
	t.Cleanup(func() {
		db.Close()
		err := pgContainer.Restore(ctx)
		require.NoError(t, err)
	})

	var userId int
	err := db.QueryRow(ctx, `INSERT INTO users (uid, username, display_name, timezone) VALUES ('uid-1', 'builder', 'Builder', 'UTC') RETURNING id`).Scan(&userId)
	require.NoError(t, err)

	var customerId int64
	err = db.QueryRow(ctx, `INSERT INTO contacts (user_id, type, name) VALUES ($1, 'customer', 'Acme Corp') RETURNING id`, userId).Scan(&customerId)
	require.NoError(t, err)

	var projectId int64
	err = db.QueryRow(ctx, `INSERT INTO projects (user_id, customer_id, name, status) VALUES ($1, $2, 'Kitchen remodel', 'active') RETURNING id`, userId, customerId).Scan(&projectId)
	require.NoError(t, err)

	return ctx, repository, userId, projectId
}

func scheduleItem(projectId int64) Item {
	return Item{
		ProjectId:           projectId,
		Title:               "Framing",
		Description:         "First floor walls",
		StartTime:           time.Date(2023, 5, 18, 8, 0, 0, 0, time.UTC),
		EndTime:             time.Date(2023, 5, 18, 16, 0, 0, 0, time.UTC),
		AssigneeType:        AssigneeEmployee,
		AssigneeId:          "crew@example.com",
		SendInvite:          true,
		CalendarSyncEnabled: true,
	}
}

func TestRepositoryImpl_StoreAndGet(t *testing.T) {
	t.Run("should store and read back an item", func(t *testing.T) {
		// given
		ctx, repo, userId, projectId := setupTestRepository(t)
		item := scheduleItem(projectId)

		// when
		id, err := repo.Store(ctx, userId, item)

		// then
		require.NoError(t, err)
		require.NotZero(t, id)

		stored, err := repo.Get(ctx, userId, id)
		require.NoError(t, err)
		assert.Equal(t, item.Title, stored.Title)
		assert.Equal(t, item.Description, stored.Description)
		assert.True(t, stored.StartTime.Equal(item.StartTime))
		assert.True(t, stored.EndTime.Equal(item.EndTime))
		assert.Equal(t, item.AssigneeType, stored.AssigneeType)
		assert.Equal(t, item.AssigneeId, stored.AssigneeId)
		assert.True(t, stored.SendInvite)
		assert.True(t, stored.CalendarSyncEnabled)
		assert.Nil(t, stored.Recurrence)
	})

	t.Run("should round trip a recurrence pattern", func(t *testing.T) {
		// given
		ctx, repo, userId, projectId := setupTestRepository(t)
		item := scheduleItem(projectId)
		item.Recurrence = &RecurrencePattern{
			Frequency: Weekly,
			Interval:  2,
			WeekDays:  []string{"MO", "WE"},
			Count:     6,
		}

		// when
		id, err := repo.Store(ctx, userId, item)

		// then
		require.NoError(t, err)
		stored, err := repo.Get(ctx, userId, id)
		require.NoError(t, err)
		require.NotNil(t, stored.Recurrence)
		assert.Equal(t, Weekly, stored.Recurrence.Frequency)
		assert.Equal(t, 2, stored.Recurrence.Interval)
		assert.Equal(t, []string{"MO", "WE"}, stored.Recurrence.WeekDays)
		assert.Equal(t, 6, stored.Recurrence.Count)
	})

	t.Run("should not see items of another user", func(t *testing.T) {
		// given
		ctx, repo, userId, projectId := setupTestRepository(t)
		id, err := repo.Store(ctx, userId, scheduleItem(projectId))
		require.NoError(t, err)

		// when
		_, err = repo.Get(ctx, userId+1, id)

		// then
		assert.True(t, errors.Is(err, ErrNotFound))
	})
}

func TestRepositoryImpl_GetRange(t *testing.T) {
	t.Run("should only return items overlapping the window", func(t *testing.T) {
		// given
		ctx, repo, userId, projectId := setupTestRepository(t)
		inside := scheduleItem(projectId)
		_, err := repo.Store(ctx, userId, inside)
		require.NoError(t, err)

		outside := scheduleItem(projectId)
		outside.Title = "Roofing"
		outside.StartTime = time.Date(2023, 7, 3, 8, 0, 0, 0, time.UTC)
		outside.EndTime = time.Date(2023, 7, 3, 16, 0, 0, 0, time.UTC)
		_, err = repo.Store(ctx, userId, outside)
		require.NoError(t, err)

		// when
		items, err := repo.GetRange(ctx, userId,
			time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC),
			time.Date(2023, 5, 22, 0, 0, 0, 0, time.UTC),
		)

		// then
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Framing", items[0].Title)
	})
}

func TestRepositoryImpl_FindByGoogleEventId(t *testing.T) {
	t.Run("should find an item by its Google event id", func(t *testing.T) {
		// given
		ctx, repo, userId, projectId := setupTestRepository(t)
		item := scheduleItem(projectId)
		item.GoogleEventId = "google-ev-42"
		id, err := repo.Store(ctx, userId, item)
		require.NoError(t, err)

		// when
		found, err := repo.FindByGoogleEventId(ctx, userId, "google-ev-42")

		// then
		require.NoError(t, err)
		assert.Equal(t, id, found.Id)
	})

	t.Run("should return ErrNotFound for an unknown event id", func(t *testing.T) {
		// given
		ctx, repo, userId, _ := setupTestRepository(t)

		// when
		_, err := repo.FindByGoogleEventId(ctx, userId, "missing")

		// then
		assert.True(t, errors.Is(err, ErrNotFound))
	})
}

func TestRepositoryImpl_UpdateSyncFields(t *testing.T) {
	t.Run("should update only the sync owned columns", func(t *testing.T) {
		// given
		ctx, repo, userId, projectId := setupTestRepository(t)
		id, err := repo.Store(ctx, userId, scheduleItem(projectId))
		require.NoError(t, err)

		// when
		err = repo.UpdateSyncFields(ctx, userId, id, "google-ev-1", "confirmed", "")

		// then
		require.NoError(t, err)
		stored, err := repo.Get(ctx, userId, id)
		require.NoError(t, err)
		assert.Equal(t, "google-ev-1", stored.GoogleEventId)
		assert.Equal(t, "confirmed", stored.InviteStatus)
		assert.Empty(t, stored.LastSyncError)
		assert.Equal(t, "Framing", stored.Title)
	})
}

func TestRepositoryImpl_Delete(t *testing.T) {
	t.Run("should delete an existing item", func(t *testing.T) {
		// given
		ctx, repo, userId, projectId := setupTestRepository(t)
		id, err := repo.Store(ctx, userId, scheduleItem(projectId))
		require.NoError(t, err)

		// when
		err = repo.Delete(ctx, userId, id)

		// then
		require.NoError(t, err)
		_, err = repo.Get(ctx, userId, id)
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("should return ErrNotFound for a missing item", func(t *testing.T) {
		// given
		ctx, repo, userId, _ := setupTestRepository(t)

		// when
		err := repo.Delete(ctx, userId, 9999)

		// then
		assert.True(t, errors.Is(err, ErrNotFound))
	})
}
