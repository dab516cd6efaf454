package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"eventhub/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

var eventCols = []string{
	"id", "owner_id", "name", "description", "location",
	"target_date", "event_start", "event_end",
	"is_canceled", "is_done", "member_count",
	"created_at", "updated_at",
}

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	event := &domain.Event{
		OwnerID:     "owner-1",
		Name:        "Reuni",
		Description: "Reuni akbar",
		Location:    "Jakarta",
		TargetDate:  ts.AddDate(0, 0, 30),
		EventStart:  ts.AddDate(0, 0, 30),
		EventEnd:    ts.AddDate(0, 0, 31),
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	mock.ExpectQuery(`INSERT INTO events \(owner_id, name, description, location, target_date, event_start, event_end, created_at, updated_at\)`).
		WithArgs("owner-1", "Reuni", "Reuni akbar", "Jakarta",
			event.TargetDate, event.EventStart, event.EventEnd, ts, ts).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("e-uuid-1"))

	repo := NewEventRepository(db)
	require.NoError(t, repo.Create(ctx, event))
	require.Equal(t, "e-uuid-1", event.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, owner_id, name, description, location, target_date, event_start, event_end, is_canceled, is_done, member_count, created_at, updated_at`).
			WithArgs("e1").
			WillReturnRows(sqlmock.NewRows(eventCols).
				AddRow("e1", "owner-1", "Reuni", "", "Jakarta", ts, ts, ts, false, false, 3, ts, ts))

		repo := NewEventRepository(db)
		got, err := repo.GetByID(ctx, "e1")
		require.NoError(t, err)
		require.Equal(t, "e1", got.ID)
		require.Equal(t, 3, got.MemberCount)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, owner_id, name`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		repo := NewEventRepository(db)
		_, err = repo.GetByID(ctx, "missing")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEventRepository_ListByTargetDateBetween(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 8, 12, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 13, 0, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// Both bounds are inclusive.
	mock.ExpectQuery(`WHERE target_date >= \$1 AND target_date <= \$2`).
		WithArgs(start, end).
		WillReturnRows(sqlmock.NewRows(eventCols).
			AddRow("e1", "owner-1", "Reuni", "", "", start, start, start, false, false, 0, start, start).
			AddRow("e2", "owner-2", "Syukuran", "", "", end, end, end, false, false, 0, end, end))

	repo := NewEventRepository(db)
	events, err := repo.ListByTargetDateBetween(ctx, start, end)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_IncrementMemberCount(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE events SET member_count = member_count \+ 1, updated_at = NOW\(\) WHERE id = \$1`).
			WithArgs("e1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewEventRepository(db)
		require.NoError(t, repo.IncrementMemberCount(ctx, "e1"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing event", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE events SET member_count = member_count \+ 1`).
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewEventRepository(db)
		require.ErrorIs(t, repo.IncrementMemberCount(ctx, "missing"), domain.ErrNotFound)
	})
}

func TestEventRepository_MarkCanceled(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE events SET is_canceled = TRUE, updated_at = NOW\(\) WHERE id = \$1`).
		WithArgs("e1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewEventRepository(db)
	require.NoError(t, repo.MarkCanceled(ctx, "e1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
