package repos

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/kova98/replydraft.api/data"
	"github.com/stretchr/testify/assert"
)

func newMockHistoryRepo(t *testing.T, limit int) (*HistoryRepo, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })
	return NewHistoryRepo(sqlx.NewDb(mockDB, "postgres"), limit), mock
}

func testEntry(id int) data.HistoryEntry {
	return data.HistoryEntry{
		ID:               id,
		PostID:           1,
		CustomizationRaw: []byte(`{}`),
		Content:          "a reply",
		WordCount:        2,
		ReadTime:         1,
		GeneratedAt:      time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestCreateEntry_TrimsOldestPastLimit(t *testing.T) {
	repo, mock := newMockHistoryRepo(t, 500)

	mock.ExpectQuery("INSERT INTO history").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(501))
	mock.ExpectExec("DELETE FROM history WHERE id NOT IN").
		WithArgs(500).
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := repo.CreateEntry(testEntry(0))

	assert.NoError(t, err)
	assert.Equal(t, 501, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateEntry_TrimUsesConfiguredLimit(t *testing.T) {
	repo, mock := newMockHistoryRepo(t, 2)

	mock.ExpectQuery("INSERT INTO history").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectExec("DELETE FROM history WHERE id NOT IN").
		WithArgs(2).
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err := repo.CreateEntry(testEntry(0))

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImportEntries_ResetsSequenceAndTrims(t *testing.T) {
	repo, mock := newMockHistoryRepo(t, 500)

	mock.ExpectExec("INSERT INTO history").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("SELECT setval").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM history WHERE id NOT IN").
		WithArgs(500).
		WillReturnResult(sqlmock.NewResult(0, 0))

	inserted, err := repo.ImportEntries([]data.HistoryEntry{testEntry(1), testEntry(2)})

	assert.NoError(t, err)
	assert.Equal(t, 2, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImportEntries_EmptyBatchTouchesNothing(t *testing.T) {
	repo, mock := newMockHistoryRepo(t, 500)

	inserted, err := repo.ImportEntries(nil)

	assert.NoError(t, err)
	assert.Zero(t, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
