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

func (s *General) EatsList(ctx context.Context) ([]models.EatsResp, error) {
	resp := make([]models.EatsResp, 0)
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		eats := make([]db.Eats, 0)
		if res := tx.Find(&eats); res.Error != nil {
			return errors.Wrap(res.Error, "find eats")
		}

		for i := range eats {
			rel, err := eatsRelations(tx, eats[i].ID)
			if err != nil {
				return err
			}
			resp = append(resp, models.NewEatsResp(&eats[i], rel))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *General) EatsGet(ctx context.Context, id uint64) (*models.EatsResp, error) {
	var resp models.EatsResp
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		eats := db.Eats{}
		if err := first(tx, &eats, id); err != nil {
			return err
		}

		rel, err := eatsRelations(tx, eats.ID)
		if err != nil {
			return err
		}
		resp = models.NewEatsResp(&eats, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *General) EatsCreate(ctx context.Context, req *models.EatsReq) (*models.EatsResp, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	eats := db.NewEats()
	if err := req.Apply(&eats); err != nil {
		return nil, err
	}

	var resp models.EatsResp
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if res := tx.Omit(clause.Associations).Create(&eats); res.Error != nil {
			return errors.Wrap(res.Error, "create eats")
		}
		if err := first(tx, &eats, eats.ID); err != nil {
			return errors.Wrap(err, "get eats")
		}
		if req.FoodTagIDs != nil {
			if err := replaceFoodTags(tx, eats.ID, *req.FoodTagIDs); err != nil {
				return err
			}
		}

		rel, err := eatsRelations(tx, eats.ID)
		if err != nil {
			return err
		}
		resp = models.NewEatsResp(&eats, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *General) EatsUpdate(ctx context.Context, id uint64, req *models.EatsReq) (*models.EatsResp, error) {
	var resp models.EatsResp
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		eats := db.Eats{}
		if err := first(tx, &eats, id); err != nil {
			return err
		}
		if err := req.Apply(&eats); err != nil {
			return err
		}

		if res := tx.Omit(clause.Associations).Save(&eats); res.Error != nil {
			return errors.Wrap(res.Error, "update eats")
		}
		if err := first(tx, &eats, id); err != nil {
			return errors.Wrap(err, "get eats")
		}
		if req.FoodTagIDs != nil {
			if err := replaceFoodTags(tx, eats.ID, *req.FoodTagIDs); err != nil {
				return err
			}
		}

		rel, err := eatsRelations(tx, eats.ID)
		if err != nil {
			return err
		}
		resp = models.NewEatsResp(&eats, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *General) EatsDelete(ctx context.Context, id uint64) error {
	return s.transaction(ctx, func(tx *gorm.DB) error {
		eats := db.Eats{}
		if err := first(tx, &eats, id); err != nil {
			return err
		}
		return deleteEats(tx, []uint64{eats.ID})
	})
}

// replaceFoodTags makes tagIDs the complete tag set of one eats.
func replaceFoodTags(tx *gorm.DB, eatsID uint64, tagIDs []uint64) error {
	if res := tx.Where("eats_id = ?", eatsID).Delete(&db.EatsFoodTag{}); res.Error != nil {
		return errors.Wrap(res.Error, "clear food tags")
	}

	seen := make(map[uint64]struct{}, len(tagIDs))
	rows := make([]db.EatsFoodTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		if _, ok := seen[tagID]; ok {
			continue
		}
		seen[tagID] = struct{}{}
		rows = append(rows, db.EatsFoodTag{EatsID: eatsID, FoodTagID: tagID})
	}
	if len(rows) == 0 {
		return nil
	}

	if res := tx.Omit(clause.Associations).Create(&rows); res.Error != nil {
		return errors.Wrap(res.Error, "attach food tags")
	}
	return nil
}

// deleteEats removes the given eats with their tag links, dibs and reviews.
func deleteEats(tx *gorm.DB, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}

	if res := tx.Where("eats_id IN ?", ids).Delete(&db.EatsFoodTag{}); res.Error != nil {
		return errors.Wrap(res.Error, "delete eats food tags")
	}
	if res := tx.Where("eats_id IN ?", ids).Delete(&db.Dibs{}); res.Error != nil {
		return errors.Wrap(res.Error, "delete eats dibs")
	}
	if res := tx.Where("eats_id IN ?", ids).Delete(&db.Review{}); res.Error != nil {
		return errors.Wrap(res.Error, "delete eats reviews")
	}
	if res := tx.Where("id IN ?", ids).Delete(&db.Eats{}); res.Error != nil {
		return errors.Wrap(res.Error, "delete eats")
	}
	return nil
}
