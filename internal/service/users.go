package service

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/eatshare/eats-back/internal/db"
	"github.com/eatshare/eats-back/internal/models"
	"github.com/eatshare/eats-back/internal/validation"
)

func (s *General) UserList(ctx context.Context) ([]models.UserResp, error) {
	resp := make([]models.UserResp, 0)
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		users := make([]db.User, 0)
		if res := tx.Find(&users); res.Error != nil {
			return errors.Wrap(res.Error, "find users")
		}

		for i := range users {
			rel, err := userRelations(tx, users[i].ID)
			if err != nil {
				return err
			}
			resp = append(resp, models.NewUserResp(&users[i], rel))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *General) UserGet(ctx context.Context, id uint64) (*models.UserResp, error) {
	var resp models.UserResp
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		user := db.User{}
		if err := first(tx, &user, id); err != nil {
			return err
		}

		rel, err := userRelations(tx, user.ID)
		if err != nil {
			return err
		}
		resp = models.NewUserResp(&user, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *General) UserCreate(ctx context.Context, req *models.UserReq) (*models.UserResp, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	user := db.User{}
	if err := req.Apply(&user); err != nil {
		return nil, err
	}
	hash, err := s.bcryptGen(*req.Password)
	if err != nil {
		return nil, errors.Wrap(err, "bcryptGen")
	}
	user.Password = hash

	var resp models.UserResp
	err = s.transaction(ctx, func(tx *gorm.DB) error {
		if res := tx.Omit(clause.Associations).Create(&user); res.Error != nil {
			return errors.Wrap(res.Error, "create user")
		}
		if err := first(tx, &user, user.ID); err != nil {
			return errors.Wrap(err, "get user")
		}

		rel, err := userRelations(tx, user.ID)
		if err != nil {
			return err
		}
		resp = models.NewUserResp(&user, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *General) UserUpdate(ctx context.Context, id uint64, req *models.UserReq) (*models.UserResp, error) {
	var hash string
	if req.Password != nil {
		var err error
		if hash, err = s.bcryptGen(*req.Password); err != nil {
			return nil, errors.Wrap(err, "bcryptGen")
		}
	}

	var resp models.UserResp
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		user := db.User{}
		if err := first(tx, &user, id); err != nil {
			return err
		}
		if err := req.Apply(&user); err != nil {
			return err
		}
		if hash != "" {
			user.Password = hash
		}

		if res := tx.Omit(clause.Associations).Save(&user); res.Error != nil {
			return errors.Wrap(res.Error, "update user")
		}
		if err := first(tx, &user, id); err != nil {
			return errors.Wrap(err, "get user")
		}

		rel, err := userRelations(tx, user.ID)
		if err != nil {
			return err
		}
		resp = models.NewUserResp(&user, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// UserDelete removes the user together with everything that points at it:
// their eats (and what hangs off those), their dibs and the reviews they gave.
func (s *General) UserDelete(ctx context.Context, id uint64) error {
	return s.transaction(ctx, func(tx *gorm.DB) error {
		user := db.User{}
		if err := first(tx, &user, id); err != nil {
			return err
		}

		eatsIDs, err := pluckIDs(tx, squirrel.
			Select("id").From("eats").
			Where(squirrel.Eq{"user_id": id}))
		if err != nil {
			return errors.Wrap(err, "find user eats")
		}
		if err := deleteEats(tx, eatsIDs); err != nil {
			return err
		}

		if res := tx.Where("user_id = ?", id).Delete(&db.Dibs{}); res.Error != nil {
			return errors.Wrap(res.Error, "delete user dibs")
		}
		if res := tx.Where("user_id = ?", id).Delete(&db.Review{}); res.Error != nil {
			return errors.Wrap(res.Error, "delete user reviews")
		}
		if res := tx.Delete(&user); res.Error != nil {
			return errors.Wrap(res.Error, "delete user")
		}
		return nil
	})
}
