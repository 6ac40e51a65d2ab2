package pgsql

import (
	"context"
	"errors"
	"testing"

	"github.com/clubops/clubledger/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rollbackTx stubs just the Rollback behaviour of a pgx transaction.
type rollbackTx struct {
	pgx.Tx
	err error
}

func (t *rollbackTx) Rollback(ctx context.Context) error {
	return t.err
}

func TestRollback_ClosedTxIsNotAnError(t *testing.T) {
	// The deferred rollback after a successful commit sees pgx.ErrTxClosed.
	repo := &BaseRepository{}
	err := repo.Rollback(context.Background(), &rollbackTx{err: pgx.ErrTxClosed})
	assert.NoError(t, err)
}

func TestRollback_RealFailureIsReported(t *testing.T) {
	repo := &BaseRepository{}
	err := repo.Rollback(context.Background(), &rollbackTx{err: errors.New("connection reset")})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 500, appErr.Code)
}

func TestListEntriesByAccount_InvalidTokenIsValidationError(t *testing.T) {
	// Token decoding happens before any pool access, so a nil pool is fine.
	repo := &PgxLedgerRepository{}
	badToken := "not-base64!!"

	entries, next, err := repo.ListEntriesByAccount(context.Background(), "acc-1", 20, &badToken)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Nil(t, entries)
	assert.Nil(t, next)
}
