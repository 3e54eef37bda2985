package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"change_tracker/internal/config"
	"change_tracker/internal/domain"
	"change_tracker/internal/service/mocks"
	"change_tracker/internal/storage/postgres"
)

// A failing insert in the middle of the first snapshot must roll back every
// row written before it.
func TestRoadmapService_RollsBackOnCardInsertFailure(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close() //nolint:errcheck

	db := sqlx.NewDb(mockDB, "sqlmock")
	ctrl := gomock.NewController(t)
	client := mocks.NewMockSnapshotClient(ctrl)
	notifier := mocks.NewMockNotifier(ctrl)

	current, err := domain.NewRoadmap(
		[]domain.Tab{{ExternalID: "t1", Name: "Planned", Slug: "planned"}, {ExternalID: "t2", Name: "Shipped", Slug: "shipped"}},
		map[string][]domain.Card{
			"t1": {{ExternalID: "c1", Name: "A"}, {ExternalID: "c2", Name: "B"}, {ExternalID: "c3", Name: "C"}},
			"t2": {{ExternalID: "c4", Name: "D"}, {ExternalID: "c5", Name: "E"}},
		},
	)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("FROM roadmap_watched_tabs")).
		WillReturnRows(sqlmock.NewRows([]string{"tab_external_id"}).AddRow("t1").AddRow("t2"))
	client.EXPECT().Fetch(gomock.Any(), []string{"t1", "t2"}).Return(current, nil)
	mock.ExpectQuery(regexp.QuoteMeta("FROM roadmap_activities")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "timestamp"}))

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO roadmap_activities")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO roadmap_tabs")).
		WithArgs("t1", "Planned", "planned").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO roadmap_tab_assignments")).
		WithArgs(int64(1), int64(10)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO roadmap_tabs")).
		WithArgs("t2", "Shipped", "shipped").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO roadmap_tab_assignments")).
		WithArgs(int64(1), int64(11)).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO roadmap_cards")).
		WithArgs("c1", "A", "", nil, "").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(100))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO roadmap_card_assignments")).
		WithArgs(int64(1), int64(10), int64(100), 0, 0).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO roadmap_cards")).
		WithArgs("c2", "B", "", nil, "").
		WillReturnError(errors.New("pq: could not extend file"))
	mock.ExpectRollback()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	svc := NewRoadmapService(
		postgres.NewRoadmapStore(db),
		postgres.NewTransactionManager(db),
		client,
		notifier,
		logger,
		config.RoadmapConfig{ChangesBaseURL: "https://tracker.example.com"},
		true,
	)

	_, err = svc.Run(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.NoError(t, mock.ExpectationsWereMet())
}
