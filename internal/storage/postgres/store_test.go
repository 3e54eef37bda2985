package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"change_tracker/internal/domain"
	"change_tracker/internal/testutil"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func TestSourceStore_List(t *testing.T) {
	db, mock := newMock(t)
	checked := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM sources")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "url", "enabled", "failed_count", "last_checked"}).
			AddRow(1, "https://a.example.com/feed", true, 0, checked).
			AddRow(2, "https://b.example.com/feed", false, 10, checked))

	sources, err := NewSourceStore(db).List(context.Background())
	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.Equal(t, domain.Source{ID: 2, URL: "https://b.example.com/feed", FailedCount: 10, LastChecked: checked}, sources[1])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSourceStore_Record(t *testing.T) {
	db, mock := newMock(t)
	store := NewSourceStore(db)
	checked := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE sources SET failed_count = $2, enabled = $3")).
		WithArgs(int64(7), 10, false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE sources SET last_checked = $2, failed_count = 0")).
		WithArgs(int64(8), checked).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.RecordFailure(context.Background(), 7, 10, false))
	require.NoError(t, store.RecordSuccess(context.Background(), 8, checked))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActivityStore_Insert(t *testing.T) {
	db, mock := newMock(t)
	ts := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO activities")).
		WithArgs(int64(3), "https://a.example.com/post", ts).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	id, err := NewActivityStore(db).Insert(context.Background(), 3, "https://a.example.com/post", ts)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActivityStore_InsertError(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO activities")).
		WillReturnError(errors.New("connection reset"))

	_, err := NewActivityStore(db).Insert(context.Background(), 3, "u", time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPersistence))
	assert.Contains(t, err.Error(), "connection reset")
}

func TestRoadmapStore_LoadMostRecent_Empty(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM roadmap_activities")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "timestamp"}))

	r, err := NewRoadmapStore(db).LoadMostRecent(context.Background())
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestRoadmapStore_LoadMostRecent(t *testing.T) {
	db, mock := newMock(t)
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM roadmap_activities")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "timestamp"}).AddRow(5, now))
	mock.ExpectQuery(regexp.QuoteMeta("FROM roadmap_tab_assignments")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"internal_id", "external_id", "name", "slug"}).
			AddRow(11, "t1", "Planned", "planned").
			AddRow(12, "t2", "Shipped", "shipped"))
	mock.ExpectQuery(regexp.QuoteMeta("FROM roadmap_card_assignments")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{
			"tab_id", "internal_id", "external_id", "name", "description", "image_url", "slug",
			"section_position", "card_position",
		}).
			AddRow(11, 101, "c2", "B", "b", nil, "b", 0, 1).
			AddRow(11, 100, "c1", "A", "a", "https://img.example.com/a.png", "a", 0, 0).
			AddRow(12, 102, "c9", "Z", "z", nil, "z", 2, 0))

	r, err := NewRoadmapStore(db).LoadMostRecent(context.Background())
	require.NoError(t, err)
	require.NotNil(t, r)

	require.Len(t, r.Tabs, 2)
	assert.Equal(t, testutil.Ptr(int64(12)), r.Tabs[1].InternalID)

	t1 := r.Cards["t1"]
	require.Len(t, t1, 2)
	assert.Equal(t, "c1", t1[0].ExternalID)
	assert.Equal(t, testutil.Ptr(int64(100)), t1[0].InternalID)
	assert.Equal(t, testutil.Ptr("https://img.example.com/a.png"), t1[0].ImageURL)
	assert.Equal(t, 1, t1[1].CardPosition)
	assert.Equal(t, 2, r.Cards["t2"][0].SectionPosition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoadmapStore_LoadMostRecent_OrphanCard(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM roadmap_activities")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "timestamp"}).AddRow(5, time.Now()))
	mock.ExpectQuery(regexp.QuoteMeta("FROM roadmap_tab_assignments")).
		WillReturnRows(sqlmock.NewRows([]string{"internal_id", "external_id", "name", "slug"}))
	mock.ExpectQuery(regexp.QuoteMeta("FROM roadmap_card_assignments")).
		WillReturnRows(sqlmock.NewRows([]string{
			"tab_id", "internal_id", "external_id", "name", "description", "image_url", "slug",
			"section_position", "card_position",
		}).AddRow(99, 100, "c1", "A", "a", nil, "a", 0, 0))

	_, err := NewRoadmapStore(db).LoadMostRecent(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvariant))
}

func TestRoadmapStore_InsertChange(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO roadmap_changes")).
		WithArgs("card_modified", int64(5), int64(100), int64(200), nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	id, err := NewRoadmapStore(db).InsertChange(context.Background(), domain.ChangeRecord{
		Type:           domain.ChangeCardModified,
		ActivityID:     5,
		PreviousCardID: testutil.Ptr(int64(100)),
		CurrentCardID:  testutil.Ptr(int64(200)),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManager_UsesTransaction(t *testing.T) {
	db, mock := newMock(t)
	tm := NewTransactionManager(db)
	store := NewRoadmapStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO roadmap_activities")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO roadmap_tab_assignments")).
		WithArgs(int64(9), int64(11)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := tm.WithTransaction(context.Background(), func(ctx context.Context) error {
		assert.NotNil(t, GetTxFromContext(ctx))
		id, err := store.InsertActivity(ctx, time.Now())
		if err != nil {
			return err
		}
		return store.InsertTabAssignment(ctx, id, 11)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManager_RollsBackOnError(t *testing.T) {
	db, mock := newMock(t)
	tm := NewTransactionManager(db)
	store := NewRoadmapStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO roadmap_cards")).
		WillReturnError(errors.New("unique violation"))
	mock.ExpectRollback()

	err := tm.WithTransaction(context.Background(), func(ctx context.Context) error {
		_, err := store.InsertCard(ctx, domain.Card{ExternalID: "c1"})
		return err
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPersistence))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManager_RollsBackOnPanic(t *testing.T) {
	db, mock := newMock(t)
	tm := NewTransactionManager(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.PanicsWithValue(t, "nil feed", func() {
		_ = tm.WithTransaction(context.Background(), func(ctx context.Context) error {
			panic("nil feed")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManager_BeginError(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	called := false
	err := NewTransactionManager(db).WithTransaction(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.False(t, called)
	assert.True(t, errors.Is(err, domain.ErrPersistence))
}

func TestGetExecutor_WithoutTransaction(t *testing.T) {
	db, _ := newMock(t)
	assert.Equal(t, sqlx.ExtContext(db), GetExecutor(context.Background(), db))
}
