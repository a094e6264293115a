package service

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/eatshare/eats-back/internal/db"
	"github.com/eatshare/eats-back/internal/models"
	"github.com/eatshare/eats-back/internal/validation"
)

func (s *General) FoodTagList(ctx context.Context) ([]models.FoodTagResp, error) {
	resp := make([]models.FoodTagResp, 0)
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		tags := make([]db.FoodTag, 0)
		if res := tx.Find(&tags); res.Error != nil {
			return errors.Wrap(res.Error, "find food tags")
		}

		for i := range tags {
			rel, err := foodTagRelations(tx, tags[i].ID)
			if err != nil {
				return err
			}
			resp = append(resp, models.NewFoodTagResp(&tags[i], rel))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *General) FoodTagGet(ctx context.Context, id uint64) (*models.FoodTagResp, error) {
	var resp models.FoodTagResp
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		tag := db.FoodTag{}
		if err := first(tx, &tag, id); err != nil {
			return err
		}

		rel, err := foodTagRelations(tx, tag.ID)
		if err != nil {
			return err
		}
		resp = models.NewFoodTagResp(&tag, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *General) FoodTagCreate(ctx context.Context, req *models.FoodTagReq) (*models.FoodTagResp, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	tag := db.FoodTag{}
	if err := req.Apply(&tag); err != nil {
		return nil, err
	}

	var resp models.FoodTagResp
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if res := tx.Omit(clause.Associations).Create(&tag); res.Error != nil {
			return errors.Wrap(res.Error, "create food tag")
		}
		if err := first(tx, &tag, tag.ID); err != nil {
			return errors.Wrap(err, "get food tag")
		}
		resp = models.NewFoodTagResp(&tag, models.FoodTagRelations{})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *General) FoodTagUpdate(ctx context.Context, id uint64, req *models.FoodTagReq) (*models.FoodTagResp, error) {
	var resp models.FoodTagResp
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		tag := db.FoodTag{}
		if err := first(tx, &tag, id); err != nil {
			return err
		}
		if err := req.Apply(&tag); err != nil {
			return err
		}

		if res := tx.Omit(clause.Associations).Save(&tag); res.Error != nil {
			return errors.Wrap(res.Error, "update food tag")
		}
		if err := first(tx, &tag, id); err != nil {
			return errors.Wrap(err, "get food tag")
		}

		rel, err := foodTagRelations(tx, tag.ID)
		if err != nil {
			return err
		}
		resp = models.NewFoodTagResp(&tag, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// FoodTagDelete also drops the tag from every eats carrying it.
func (s *General) FoodTagDelete(ctx context.Context, id uint64) error {
	return s.transaction(ctx, func(tx *gorm.DB) error {
		tag := db.FoodTag{}
		if err := first(tx, &tag, id); err != nil {
			return err
		}
		if res := tx.Where("food_tag_id = ?", id).Delete(&db.EatsFoodTag{}); res.Error != nil {
			return errors.Wrap(res.Error, "delete food tag links")
		}
		if res := tx.Delete(&tag); res.Error != nil {
			return errors.Wrap(res.Error, "delete food tag")
		}
		return nil
	})
}
