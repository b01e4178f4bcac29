package discount

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_GetActive(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		rows := sqlmock.NewRows([]string{"value", "description", "is_active", "updated_at"}).
			AddRow("20", "Festive sale", true, now)

		mock.ExpectQuery("SELECT value, description, is_active, updated_at FROM max_discount WHERE is_active = TRUE").
			WillReturnRows(rows)

		m, err := repo.GetActive(ctx)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(20).Equal(m.Value))
		assert.Equal(t, "Festive sale", m.Description)
		assert.True(t, m.IsActive)
		require.NotNil(t, m.UpdatedAt)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM max_discount").WillReturnError(sql.ErrNoRows)

		m, err := repo.GetActive(ctx)
		assert.Nil(t, m)
		assert.ErrorIs(t, err, ErrNoActivePolicy)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM max_discount").WillReturnError(errors.New("db down"))

		_, err := repo.GetActive(ctx)
		assert.ErrorIs(t, err, ErrFailedGetPolicy)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Upsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	in := &MaxDiscount{Value: decimal.NewFromInt(35), Description: DefaultDescription, IsActive: true}

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"value", "description", "is_active", "updated_at"}).
			AddRow("35", DefaultDescription, true, time.Now())

		mock.ExpectQuery("INSERT INTO max_discount (.+) ON CONFLICT \\(id\\) DO UPDATE").
			WithArgs(in.Value, in.Description, in.IsActive).
			WillReturnRows(rows)

		out, err := repo.Upsert(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, "35", out.Value.String())
		assert.NotNil(t, out.UpdatedAt)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO max_discount").WillReturnError(errors.New("constraint"))

		_, err := repo.Upsert(ctx, in)
		assert.ErrorIs(t, err, ErrFailedUpsertPolicy)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
