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

func (s *General) ReviewList(ctx context.Context) ([]models.ReviewResp, error) {
	resp := make([]models.ReviewResp, 0)
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		reviews := make([]db.Review, 0)
		if res := tx.Find(&reviews); res.Error != nil {
			return errors.Wrap(res.Error, "find reviews")
		}

		for i := range reviews {
			names, err := ownerNames(tx, reviews[i].UserID, reviews[i].EatsID)
			if err != nil {
				return err
			}
			resp = append(resp, models.NewReviewResp(&reviews[i], names))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *General) ReviewGet(ctx context.Context, id uint64) (*models.ReviewResp, error) {
	var resp models.ReviewResp
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		review := db.Review{}
		if err := first(tx, &review, id); err != nil {
			return err
		}

		names, err := ownerNames(tx, review.UserID, review.EatsID)
		if err != nil {
			return err
		}
		resp = models.NewReviewResp(&review, names)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *General) ReviewCreate(ctx context.Context, req *models.ReviewReq) (*models.ReviewResp, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	review := db.Review{}
	if err := req.Apply(&review); err != nil {
		return nil, err
	}

	var resp models.ReviewResp
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if res := tx.Omit(clause.Associations).Create(&review); res.Error != nil {
			return errors.Wrap(res.Error, "create review")
		}
		if err := first(tx, &review, review.ID); err != nil {
			return errors.Wrap(err, "get review")
		}

		names, err := ownerNames(tx, review.UserID, review.EatsID)
		if err != nil {
			return err
		}
		resp = models.NewReviewResp(&review, names)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *General) ReviewUpdate(ctx context.Context, id uint64, req *models.ReviewReq) (*models.ReviewResp, error) {
	var resp models.ReviewResp
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		review := db.Review{}
		if err := first(tx, &review, id); err != nil {
			return err
		}
		if err := req.Apply(&review); err != nil {
			return err
		}

		if res := tx.Omit(clause.Associations).Save(&review); res.Error != nil {
			return errors.Wrap(res.Error, "update review")
		}
		if err := first(tx, &review, id); err != nil {
			return errors.Wrap(err, "get review")
		}

		names, err := ownerNames(tx, review.UserID, review.EatsID)
		if err != nil {
			return err
		}
		resp = models.NewReviewResp(&review, names)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *General) ReviewDelete(ctx context.Context, id uint64) error {
	return s.transaction(ctx, func(tx *gorm.DB) error {
		review := db.Review{}
		if err := first(tx, &review, id); err != nil {
			return err
		}
		if res := tx.Delete(&review); res.Error != nil {
			return errors.Wrap(res.Error, "delete review")
		}
		return nil
	})
}
