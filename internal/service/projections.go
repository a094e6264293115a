package service

import (
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/eatshare/eats-back/internal/models"
)

// The derived fields of each response are read with explicit queries here
// instead of loading relations onto the models.

func query(tx *gorm.DB, b squirrel.SelectBuilder, each func(rows *sql.Rows) error) error {
	stmt, args, err := b.ToSql()
	if err != nil {
		return errors.Wrap(err, "build sql")
	}

	rows, err := tx.Raw(stmt, args...).Rows()
	if err != nil {
		return errors.Wrap(err, "query")
	}
	defer rows.Close()

	for rows.Next() {
		if err := each(rows); err != nil {
			return errors.Wrap(err, "scan")
		}
	}
	return rows.Err()
}

func pluckStrings(tx *gorm.DB, b squirrel.SelectBuilder) ([]string, error) {
	out := make([]string, 0)
	err := query(tx, b, func(rows *sql.Rows) error {
		var v string
		if err := rows.Scan(&v); err != nil {
			return err
		}
		out = append(out, v)
		return nil
	})
	return out, err
}

func pluckInts(tx *gorm.DB, b squirrel.SelectBuilder) ([]int, error) {
	out := make([]int, 0)
	err := query(tx, b, func(rows *sql.Rows) error {
		var v int
		if err := rows.Scan(&v); err != nil {
			return err
		}
		out = append(out, v)
		return nil
	})
	return out, err
}

func pluckIDs(tx *gorm.DB, b squirrel.SelectBuilder) ([]uint64, error) {
	out := make([]uint64, 0)
	err := query(tx, b, func(rows *sql.Rows) error {
		var v uint64
		if err := rows.Scan(&v); err != nil {
			return err
		}
		out = append(out, v)
		return nil
	})
	return out, err
}

// pluckOne returns the first string the query yields, or "".
func pluckOne(tx *gorm.DB, b squirrel.SelectBuilder) (string, error) {
	out, err := pluckStrings(tx, b.Limit(1))
	if err != nil || len(out) == 0 {
		return "", err
	}
	return out[0], nil
}

func userRelations(tx *gorm.DB, userID uint64) (models.UserRelations, error) {
	var (
		rel models.UserRelations
		err error
	)

	rel.EatNames, err = pluckStrings(tx, squirrel.
		Select("eats_name").From("eats").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("id"))
	if err != nil {
		return rel, errors.Wrap(err, "eat names")
	}

	rel.DibStatuses, err = pluckStrings(tx, squirrel.
		Select("dib_status").From("dibs").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("id"))
	if err != nil {
		return rel, errors.Wrap(err, "dib statuses")
	}

	rel.GivenReviewRatings, err = pluckInts(tx, squirrel.
		Select("rating").From("reviews").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("id"))
	if err != nil {
		return rel, errors.Wrap(err, "given review ratings")
	}

	rel.ReceivedReviewRatings, err = pluckInts(tx, squirrel.
		Select("r.rating").From("reviews r").
		Join("eats e ON e.id = r.eats_id").
		Where(squirrel.Eq{"e.user_id": userID}).
		OrderBy("r.id"))
	if err != nil {
		return rel, errors.Wrap(err, "received review ratings")
	}

	return rel, nil
}

func eatsRelations(tx *gorm.DB, eatsID uint64) (models.EatsRelations, error) {
	rel := models.EatsRelations{
		FoodTagIDs: make([]uint64, 0),
		Tags:       make([]string, 0),
	}

	err := query(tx, squirrel.
		Select("t.id", "t.name").From("food_tags t").
		Join("eats_food_tags et ON et.food_tag_id = t.id").
		Where(squirrel.Eq{"et.eats_id": eatsID}).
		OrderBy("t.id"),
		func(rows *sql.Rows) error {
			var (
				id   uint64
				name string
			)
			if err := rows.Scan(&id, &name); err != nil {
				return err
			}
			rel.FoodTagIDs = append(rel.FoodTagIDs, id)
			rel.Tags = append(rel.Tags, name)
			return nil
		})
	if err != nil {
		return rel, errors.Wrap(err, "tags")
	}

	rel.DibStatuses, err = pluckStrings(tx, squirrel.
		Select("dib_status").From("dibs").
		Where(squirrel.Eq{"eats_id": eatsID}).
		OrderBy("id"))
	if err != nil {
		return rel, errors.Wrap(err, "dib statuses")
	}

	rel.ReviewRatings, err = pluckInts(tx, squirrel.
		Select("rating").From("reviews").
		Where(squirrel.Eq{"eats_id": eatsID}).
		OrderBy("id"))
	if err != nil {
		return rel, errors.Wrap(err, "review ratings")
	}

	return rel, nil
}

func ownerNames(tx *gorm.DB, userID, eatsID uint64) (models.OwnerNames, error) {
	var (
		names models.OwnerNames
		err   error
	)

	names.UserName, err = pluckOne(tx, squirrel.
		Select("username").From("users").
		Where(squirrel.Eq{"id": userID}))
	if err != nil {
		return names, errors.Wrap(err, "user name")
	}

	names.EatsName, err = pluckOne(tx, squirrel.
		Select("eats_name").From("eats").
		Where(squirrel.Eq{"id": eatsID}))
	if err != nil {
		return names, errors.Wrap(err, "eats name")
	}

	return names, nil
}

func foodTagRelations(tx *gorm.DB, tagID uint64) (models.FoodTagRelations, error) {
	names, err := pluckStrings(tx, squirrel.
		Select("e.eats_name").From("eats e").
		Join("eats_food_tags et ON et.eats_id = e.id").
		Where(squirrel.Eq{"et.food_tag_id": tagID}).
		OrderBy("e.id"))
	if err != nil {
		return models.FoodTagRelations{}, errors.Wrap(err, "eats names")
	}
	return models.FoodTagRelations{EatsNames: names}, nil
}
