package models

import (
	"time"

	"github.com/eatshare/eats-back/internal/db"
)

// Response bodies. Each one is the full output whitelist for its entity; derived
// collections are flat projections so no reference is ever walked back.
type (
	UserResp struct {
		ID                    uint64    `json:"id"`
		Username              string    `json:"username"`
		FirstName             *string   `json:"first_name"`
		LastName              *string   `json:"last_name"`
		EmailAddress          string    `json:"email_address"`
		PhoneNumber           *string   `json:"phone_number"`
		Address               *string   `json:"address"`
		AllergicInfo          *string   `json:"allergic_info"`
		CreatedAt             time.Time `json:"created_at"`
		UpdatedAt             time.Time `json:"updated_at"`
		EatNames              []string  `json:"eat_names"`
		DibStatuses           []string  `json:"dib_statuses"`
		GivenReviewRatings    []int     `json:"given_review_ratings"`
		ReceivedReviewRatings []int     `json:"received_review_ratings"`
	}

	EatsResp struct {
		ID                 uint64    `json:"id"`
		EatsName           string    `json:"eats_name"`
		Category           string    `json:"category"`
		Description        string    `json:"description"`
		CookTime           string    `json:"cook_time"`
		Quantity           int       `json:"quantity"`
		AllergicIngredient *string   `json:"allergic_ingredient"`
		Perishable         bool      `json:"perishable"`
		ImageURL           *string   `json:"image_url"`
		IsAvailable        bool      `json:"is_available"`
		UserID             uint64    `json:"user_id"`
		CreatedAt          time.Time `json:"created_at"`
		UpdatedAt          time.Time `json:"updated_at"`
		FoodTagIDs         []uint64  `json:"food_tag_ids"`
		Tags               []string  `json:"tags"`
		DibStatuses        []string  `json:"dib_statuses"`
		ReviewRatings      []int     `json:"review_ratings"`
	}

	DibsResp struct {
		ID        uint64    `json:"id"`
		DibStatus string    `json:"dib_status"`
		UserID    uint64    `json:"user_id"`
		EatsID    uint64    `json:"eats_id"`
		CreatedAt time.Time `json:"created_at"`
		UpdatedAt time.Time `json:"updated_at"`
		UserName  string    `json:"user_name"`
		EatsName  string    `json:"eats_name"`
	}

	ReviewResp struct {
		ID        uint64    `json:"id"`
		Rating    int       `json:"rating"`
		Comment   *string   `json:"comment"`
		UserID    uint64    `json:"user_id"`
		EatsID    uint64    `json:"eats_id"`
		CreatedAt time.Time `json:"created_at"`
		UpdatedAt time.Time `json:"updated_at"`
		UserName  string    `json:"user_name"`
		EatsName  string    `json:"eats_name"`
	}

	FoodTagResp struct {
		ID        uint64    `json:"id"`
		Name      string    `json:"name"`
		CreatedAt time.Time `json:"created_at"`
		UpdatedAt time.Time `json:"updated_at"`
		EatsNames []string  `json:"eats_names"`
	}
)

// Relation projections filled by the service layer.
type (
	UserRelations struct {
		EatNames              []string
		DibStatuses           []string
		GivenReviewRatings    []int
		ReceivedReviewRatings []int
	}

	EatsRelations struct {
		FoodTagIDs    []uint64
		Tags          []string
		DibStatuses   []string
		ReviewRatings []int
	}

	// OwnerNames covers both Dibs and Review, which point at one user and one eats.
	OwnerNames struct {
		UserName string
		EatsName string
	}

	FoodTagRelations struct {
		EatsNames []string
	}
)

func NewUserResp(u *db.User, rel UserRelations) UserResp {
	return UserResp{
		ID:                    u.ID,
		Username:              u.Username,
		FirstName:             u.FirstName,
		LastName:              u.LastName,
		EmailAddress:          u.EmailAddress,
		PhoneNumber:           u.PhoneNumber,
		Address:               u.Address,
		AllergicInfo:          u.AllergicInfo,
		CreatedAt:             u.CreatedAt,
		UpdatedAt:             u.UpdatedAt,
		EatNames:              strs(rel.EatNames),
		DibStatuses:           strs(rel.DibStatuses),
		GivenReviewRatings:    ints(rel.GivenReviewRatings),
		ReceivedReviewRatings: ints(rel.ReceivedReviewRatings),
	}
}

func NewEatsResp(e *db.Eats, rel EatsRelations) EatsResp {
	ids := rel.FoodTagIDs
	if ids == nil {
		ids = []uint64{}
	}
	return EatsResp{
		ID:                 e.ID,
		EatsName:           e.EatsName,
		Category:           e.Category,
		Description:        e.Description,
		CookTime:           e.CookTime,
		Quantity:           e.Quantity,
		AllergicIngredient: e.AllergicIngredient,
		Perishable:         e.Perishable,
		ImageURL:           e.ImageURL,
		IsAvailable:        e.IsAvailable,
		UserID:             e.UserID,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
		FoodTagIDs:         ids,
		Tags:               strs(rel.Tags),
		DibStatuses:        strs(rel.DibStatuses),
		ReviewRatings:      ints(rel.ReviewRatings),
	}
}

func NewDibsResp(d *db.Dibs, names OwnerNames) DibsResp {
	return DibsResp{
		ID:        d.ID,
		DibStatus: d.DibStatus,
		UserID:    d.UserID,
		EatsID:    d.EatsID,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
		UserName:  names.UserName,
		EatsName:  names.EatsName,
	}
}

func NewReviewResp(r *db.Review, names OwnerNames) ReviewResp {
	return ReviewResp{
		ID:        r.ID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		UserID:    r.UserID,
		EatsID:    r.EatsID,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		UserName:  names.UserName,
		EatsName:  names.EatsName,
	}
}

func NewFoodTagResp(t *db.FoodTag, rel FoodTagRelations) FoodTagResp {
	return FoodTagResp{
		ID:        t.ID,
		Name:      t.Name,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
		EatsNames: strs(rel.EatsNames),
	}
}

// empty collections go out as [] rather than null
func strs(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func ints(v []int) []int {
	if v == nil {
		return []int{}
	}
	return v
}
