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

func (s *General) DibsList(ctx context.Context) ([]models.DibsResp, error) {
	resp := make([]models.DibsResp, 0)
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		dibs := make([]db.Dibs, 0)
		if res := tx.Find(&dibs); res.Error != nil {
			return errors.Wrap(res.Error, "find dibs")
		}

		for i := range dibs {
			names, err := ownerNames(tx, dibs[i].UserID, dibs[i].EatsID)
			if err != nil {
				return err
			}
			resp = append(resp, models.NewDibsResp(&dibs[i], names))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *General) DibsGet(ctx context.Context, id uint64) (*models.DibsResp, error) {
	var resp models.DibsResp
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		dibs := db.Dibs{}
		if err := first(tx, &dibs, id); err != nil {
			return err
		}
		return s.dibsResp(tx, &dibs, &resp)
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *General) DibsCreate(ctx context.Context, req *models.DibsReq) (*models.DibsResp, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	dibs := db.Dibs{}
	if err := req.Apply(&dibs); err != nil {
		return nil, err
	}

	var resp models.DibsResp
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if res := tx.Omit(clause.Associations).Create(&dibs); res.Error != nil {
			return errors.Wrap(res.Error, "create dibs")
		}
		if err := first(tx, &dibs, dibs.ID); err != nil {
			return errors.Wrap(err, "get dibs")
		}
		return s.dibsResp(tx, &dibs, &resp)
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *General) DibsUpdate(ctx context.Context, id uint64, req *models.DibsReq) (*models.DibsResp, error) {
	var resp models.DibsResp
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		dibs := db.Dibs{}
		if err := first(tx, &dibs, id); err != nil {
			return err
		}
		if err := req.Apply(&dibs); err != nil {
			return err
		}

		if res := tx.Omit(clause.Associations).Save(&dibs); res.Error != nil {
			return errors.Wrap(res.Error, "update dibs")
		}
		if err := first(tx, &dibs, id); err != nil {
			return errors.Wrap(err, "get dibs")
		}
		return s.dibsResp(tx, &dibs, &resp)
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *General) DibsDelete(ctx context.Context, id uint64) error {
	return s.transaction(ctx, func(tx *gorm.DB) error {
		dibs := db.Dibs{}
		if err := first(tx, &dibs, id); err != nil {
			return err
		}
		if res := tx.Delete(&dibs); res.Error != nil {
			return errors.Wrap(res.Error, "delete dibs")
		}
		return nil
	})
}

func (s *General) dibsResp(tx *gorm.DB, dibs *db.Dibs, resp *models.DibsResp) error {
	names, err := ownerNames(tx, dibs.UserID, dibs.EatsID)
	if err != nil {
		return err
	}
	*resp = models.NewDibsResp(dibs, names)
	return nil
}
