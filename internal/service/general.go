package service

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/eatshare/eats-back/internal/config"
	"github.com/eatshare/eats-back/internal/db"
)

var (
	Module = fx.Provide(
		NewGeneral,
	)
)

// General runs every resource operation against the store, one transaction per call.
type General struct {
	db           *gorm.DB
	logger       *zap.SugaredLogger
	passwordCost int
}

func NewGeneral(db *gorm.DB, l *zap.SugaredLogger, cfg *config.Config) *General {
	return &General{
		db:           db,
		logger:       l,
		passwordCost: cfg.PasswordCost,
	}
}

// Ping reports whether the store answers.
func (s *General) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.Wrap(err, "get sql db")
	}
	return sqlDB.PingContext(ctx)
}

func (s *General) transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return db.TranslateError(s.db.WithContext(ctx).Transaction(fn))
}

// first loads one row by id or fails with db.ErrNotFound.
func first(tx *gorm.DB, dest interface{}, id uint64) error {
	res := tx.First(dest, id)
	if res.Error != nil {
		return db.TranslateError(res.Error)
	}
	return nil
}

func (s *General) bcryptGen(pass string) (string, error) {
	passwordHashB, err := bcrypt.GenerateFromPassword([]byte(pass), s.passwordCost)
	if err != nil {
		return "", errors.Wrap(err, "generate password hash")
	}
	return string(passwordHashB), nil
}
