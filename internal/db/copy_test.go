package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyFrom_EmptyRows(t *testing.T) {
	n, err := CopyFrom(context.TODO(), nil, "profiles", []string{"id", "profile"}, nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestCopyFrom_Success(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectCopyFrom(pgx.Identifier{"profiles"}, []string{"id", "profile"}).WillReturnResult(3)

	rows := [][]any{{"u1", "{}"}, {"u2", "{}"}, {"u3", "{}"}}
	n, err := CopyFrom(context.Background(), mock, "profiles", []string{"id", "profile"}, rows)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCopyFrom_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectCopyFrom(pgx.Identifier{"profiles"}, []string{"id", "profile"}).WillReturnError(fmt.Errorf("copy failed"))

	rows := [][]any{{"u1", "{}"}}
	_, err = CopyFrom(context.Background(), mock, "profiles", []string{"id", "profile"}, rows)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COPY INTO profiles")
	assert.NoError(t, mock.ExpectationsWereMet())
}
