package models

import (
	"github.com/eatshare/eats-back/internal/db"
	"github.com/eatshare/eats-back/internal/validation"
)

// Request payloads. A nil field was absent from the body and is left alone;
// `validate` tags are only enforced on create.
type (
	UserReq struct {
		Username     *string `json:"username" validate:"required"`
		Password     *string `json:"password" validate:"required"`
		FirstName    *string `json:"first_name"`
		LastName     *string `json:"last_name"`
		EmailAddress *string `json:"email_address" validate:"required"`
		PhoneNumber  *string `json:"phone_number"`
		Address      *string `json:"address"`
		AllergicInfo *string `json:"allergic_info"`
	}

	EatsReq struct {
		EatsName           *string   `json:"eats_name" validate:"required"`
		Category           *string   `json:"category" validate:"required"`
		Description        *string   `json:"description" validate:"required"`
		CookTime           *string   `json:"cook_time" validate:"required"`
		Quantity           *int      `json:"quantity" validate:"required"`
		AllergicIngredient *string   `json:"allergic_ingredient"`
		Perishable         *bool     `json:"perishable" validate:"required"`
		ImageURL           *string   `json:"image_url"`
		IsAvailable        *bool     `json:"is_available"`
		UserID             *uint64   `json:"user_id" validate:"required"`
		FoodTagIDs         *[]uint64 `json:"food_tag_ids"`
	}

	DibsReq struct {
		DibStatus *string `json:"dib_status" validate:"required"`
		UserID    *uint64 `json:"user_id" validate:"required"`
		EatsID    *uint64 `json:"eats_id" validate:"required"`
	}

	ReviewReq struct {
		Rating  *int    `json:"rating" validate:"required"`
		Comment *string `json:"comment"`
		UserID  *uint64 `json:"user_id" validate:"required"`
		EatsID  *uint64 `json:"eats_id" validate:"required"`
	}

	FoodTagReq struct {
		Name *string `json:"name" validate:"required"`
	}
)

// Apply copies the present fields onto u. Password is left to the caller,
// which stores a hash instead of the plain value.
func (r *UserReq) Apply(u *db.User) error {
	if r.Username != nil {
		if err := validation.Username(*r.Username); err != nil {
			return err
		}
		u.Username = *r.Username
	}
	if r.EmailAddress != nil {
		if err := validation.EmailAddress(*r.EmailAddress); err != nil {
			return err
		}
		u.EmailAddress = *r.EmailAddress
	}
	if r.FirstName != nil {
		u.FirstName = r.FirstName
	}
	if r.LastName != nil {
		u.LastName = r.LastName
	}
	if r.PhoneNumber != nil {
		u.PhoneNumber = r.PhoneNumber
	}
	if r.Address != nil {
		u.Address = r.Address
	}
	if r.AllergicInfo != nil {
		u.AllergicInfo = r.AllergicInfo
	}
	return nil
}

// Apply copies the present columns onto e. FoodTagIDs is handled by the caller
// since it touches the join table, not the row.
func (r *EatsReq) Apply(e *db.Eats) error {
	if r.EatsName != nil {
		if err := validation.EatsName(*r.EatsName); err != nil {
			return err
		}
		e.EatsName = *r.EatsName
	}
	if r.Quantity != nil {
		if err := validation.Quantity(*r.Quantity); err != nil {
			return err
		}
		e.Quantity = *r.Quantity
	}
	if r.Category != nil {
		e.Category = *r.Category
	}
	if r.Description != nil {
		e.Description = *r.Description
	}
	if r.CookTime != nil {
		e.CookTime = *r.CookTime
	}
	if r.AllergicIngredient != nil {
		e.AllergicIngredient = r.AllergicIngredient
	}
	if r.Perishable != nil {
		e.Perishable = *r.Perishable
	}
	if r.ImageURL != nil {
		e.ImageURL = r.ImageURL
	}
	if r.IsAvailable != nil {
		e.IsAvailable = *r.IsAvailable
	}
	if r.UserID != nil {
		e.UserID = *r.UserID
	}
	return nil
}

func (r *DibsReq) Apply(d *db.Dibs) error {
	if r.DibStatus != nil {
		if err := validation.DibStatus(*r.DibStatus); err != nil {
			return err
		}
		d.DibStatus = *r.DibStatus
	}
	if r.UserID != nil {
		d.UserID = *r.UserID
	}
	if r.EatsID != nil {
		d.EatsID = *r.EatsID
	}
	return nil
}

func (r *ReviewReq) Apply(rv *db.Review) error {
	if r.Rating != nil {
		if err := validation.Rating(*r.Rating); err != nil {
			return err
		}
		rv.Rating = *r.Rating
	}
	if r.Comment != nil {
		rv.Comment = r.Comment
	}
	if r.UserID != nil {
		rv.UserID = *r.UserID
	}
	if r.EatsID != nil {
		rv.EatsID = *r.EatsID
	}
	return nil
}

func (r *FoodTagReq) Apply(t *db.FoodTag) error {
	if r.Name != nil {
		if err := validation.TagName(*r.Name); err != nil {
			return err
		}
		t.Name = *r.Name
	}
	return nil
}
