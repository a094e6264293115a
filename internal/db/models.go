package db

import (
	"time"
)

type (
	GormForkedModel struct {
		ID        uint64 `gorm:"primarykey"`
		CreatedAt time.Time
		UpdatedAt time.Time
	}

	User struct {
		GormForkedModel
		Username     string  `gorm:"size:80;unique;not null"`
		Password     string  `gorm:"size:128;not null"`
		FirstName    *string `gorm:"size:50"`
		LastName     *string `gorm:"size:50"`
		EmailAddress string  `gorm:"size:120;unique;not null"`
		PhoneNumber  *string `gorm:"size:15"`
		Address      *string `gorm:"size:200"`
		AllergicInfo *string `gorm:"size:300"`
	}

	Eats struct {
		GormForkedModel
		EatsName           string  `gorm:"size:100;not null"`
		Category           string  `gorm:"size:50;not null"`
		Description        string  `gorm:"size:300;not null"`
		CookTime           string  `gorm:"size:50;not null"`
		Quantity           int     `gorm:"not null"`
		AllergicIngredient *string `gorm:"size:300"`
		Perishable         bool    `gorm:"not null"`
		ImageURL           *string `gorm:"size:200"`
		IsAvailable        bool    `gorm:"not null"`
		UserID             uint64  `gorm:"not null;index"`
		User               *User
	}

	Dibs struct {
		GormForkedModel
		DibStatus string `gorm:"size:50;not null"`
		UserID    uint64 `gorm:"not null;index"`
		User      *User
		EatsID    uint64 `gorm:"not null;index"`
		Eats      *Eats
	}

	Review struct {
		GormForkedModel
		Rating  int     `gorm:"not null"`
		Comment *string `gorm:"size:300"`
		UserID  uint64  `gorm:"not null;index"`
		User    *User
		EatsID  uint64 `gorm:"not null;index"`
		Eats    *Eats
	}

	FoodTag struct {
		GormForkedModel
		Name string `gorm:"size:50;unique;not null"`
	}

	// EatsFoodTag rows only change through Eats tag replacement and cascading deletes.
	EatsFoodTag struct {
		EatsID    uint64 `gorm:"primaryKey;autoIncrement:false"`
		Eats      *Eats
		FoodTagID uint64 `gorm:"primaryKey;autoIncrement:false"`
		FoodTag   *FoodTag
	}
)

func (User) TableName() string        { return "users" }
func (Eats) TableName() string        { return "eats" }
func (Dibs) TableName() string        { return "dibs" }
func (Review) TableName() string      { return "reviews" }
func (FoodTag) TableName() string     { return "food_tags" }
func (EatsFoodTag) TableName() string { return "eats_food_tags" }

// NewEats returns an Eats carrying the column defaults.
func NewEats() Eats {
	return Eats{IsAvailable: true}
}
