package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digbiz/insight-engine/internal/model"
)

func newMockPostgres(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresFromPool(mock), mock
}

func TestPostgres_UpsertProfile(t *testing.T) {
	st, mock := newMockPostgres(t)

	p := testProfile("u1")
	profileJSON, err := json.Marshal(p)
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO profiles").
		WithArgs("u1", "technology", "san francisco", profileJSON, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, st.UpsertProfile(context.Background(), p))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_UpsertProfile_RequiresID(t *testing.T) {
	st, _ := newMockPostgres(t)

	err := st.UpsertProfile(context.Background(), model.Profile{Name: "No ID"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id required")
}

func TestPostgres_GetProfile(t *testing.T) {
	st, mock := newMockPostgres(t)

	p := testProfile("u1")
	profileJSON, err := json.Marshal(p)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT profile FROM profiles").
		WithArgs("u1").
		WillReturnRows(pgxmock.NewRows([]string{"profile"}).AddRow(profileJSON))

	got, err := st.GetProfile(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, p, *got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GetProfile_Missing(t *testing.T) {
	st, mock := newMockPostgres(t)

	mock.ExpectQuery("SELECT profile FROM profiles").
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	got, err := st.GetProfile(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ListProfiles_Filtered(t *testing.T) {
	st, mock := newMockPostgres(t)

	p := testProfile("u1")
	profileJSON, err := json.Marshal(p)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT profile FROM profiles WHERE true AND industry").
		WithArgs("technology", 100).
		WillReturnRows(pgxmock.NewRows([]string{"profile"}).AddRow(profileJSON))

	got, err := st.ListProfiles(context.Background(), ProfileFilter{Industry: "Technology"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "u1", got[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_DeleteProfile_NotFound(t *testing.T) {
	st, mock := newMockPostgres(t)

	mock.ExpectExec("DELETE FROM profiles").
		WithArgs("ghost").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := st.DeleteProfile(context.Background(), "ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "profile not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Migrate_Error(t *testing.T) {
	st, mock := newMockPostgres(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS profiles").
		WillReturnError(errors.New("permission denied"))

	err := st.Migrate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres: migrate")
	assert.NoError(t, mock.ExpectationsWereMet())
}
