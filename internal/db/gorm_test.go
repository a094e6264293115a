package db_test

import (
	"testing"

	"github.com/jackc/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/eatshare/eats-back/internal/db"
	"github.com/eatshare/eats-back/internal/db/dbtest"
)

func TestMigrateCreatesTables(t *testing.T) {
	conn := dbtest.New(t)

	for _, table := range []string{"users", "eats", "dibs", "reviews", "food_tags", "eats_food_tags"} {
		assert.True(t, conn.Migrator().HasTable(table), table)
	}
}

func TestTranslateError(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		conn := dbtest.New(t)

		err := conn.First(&db.User{}, 42).Error
		assert.Equal(t, db.ErrNotFound, db.TranslateError(err))
	})

	t.Run("wrapped not found", func(t *testing.T) {
		err := errors.Wrap(gorm.ErrRecordNotFound, "load user")
		assert.Equal(t, db.ErrNotFound, db.TranslateError(err))
	})

	t.Run("sqlite unique violation", func(t *testing.T) {
		conn := dbtest.New(t)

		require.NoError(t, conn.Create(&db.FoodTag{Name: "vegan"}).Error)
		err := db.TranslateError(conn.Create(&db.FoodTag{Name: "vegan"}).Error)

		var cErr *db.ConstraintError
		assert.True(t, errors.As(err, &cErr))
	})

	t.Run("sqlite foreign key violation", func(t *testing.T) {
		conn := dbtest.New(t)

		err := db.TranslateError(conn.Create(&db.Dibs{DibStatus: "pending", UserID: 7, EatsID: 9}).Error)

		var cErr *db.ConstraintError
		assert.True(t, errors.As(err, &cErr))
	})

	t.Run("postgres unique violation", func(t *testing.T) {
		err := db.TranslateError(errors.Wrap(&pgconn.PgError{Code: "23505"}, "insert"))

		var cErr *db.ConstraintError
		assert.True(t, errors.As(err, &cErr))
	})

	t.Run("postgres other error", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "42P01"}
		assert.Equal(t, pgErr, db.TranslateError(pgErr))
	})

	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, db.TranslateError(nil))
	})
}

func TestNewEatsDefaults(t *testing.T) {
	assert.True(t, db.NewEats().IsAvailable)
}
