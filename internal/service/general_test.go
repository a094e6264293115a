package service

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/eatshare/eats-back/internal/config"
	"github.com/eatshare/eats-back/internal/db"
	"github.com/eatshare/eats-back/internal/db/dbtest"
	"github.com/eatshare/eats-back/internal/models"
	"github.com/eatshare/eats-back/internal/validation"
)

func newTestService(t *testing.T) *General {
	t.Helper()
	return NewGeneral(dbtest.New(t), zap.NewNop().Sugar(), &config.Config{PasswordCost: bcrypt.MinCost})
}

func str(s string) *string      { return &s }
func num(n int) *int            { return &n }
func u64(n uint64) *uint64      { return &n }
func flag(b bool) *bool         { return &b }
func ids(n ...uint64) *[]uint64 { return &n }

func isValidationErr(err error) bool {
	var vErr *validation.Error
	return errors.As(err, &vErr)
}

func isConstraintErr(err error) bool {
	var cErr *db.ConstraintError
	return errors.As(err, &cErr)
}

func createUser(t *testing.T, s *General, name string) *models.UserResp {
	t.Helper()
	u, err := s.UserCreate(context.Background(), &models.UserReq{
		Username:     str(name),
		Password:     str("p"),
		EmailAddress: str(name + "@example.com"),
	})
	require.NoError(t, err)
	return u
}

func createEats(t *testing.T, s *General, userID uint64, name string, tags ...uint64) *models.EatsResp {
	t.Helper()
	req := &models.EatsReq{
		EatsName:    str(name),
		Category:    str("Dinner"),
		Description: str("d"),
		CookTime:    str("30m"),
		Quantity:    num(2),
		Perishable:  flag(true),
		UserID:      u64(userID),
	}
	if len(tags) > 0 {
		req.FoodTagIDs = ids(tags...)
	}
	e, err := s.EatsCreate(context.Background(), req)
	require.NoError(t, err)
	return e
}

func createTag(t *testing.T, s *General, name string) *models.FoodTagResp {
	t.Helper()
	tag, err := s.FoodTagCreate(context.Background(), &models.FoodTagReq{Name: str(name)})
	require.NoError(t, err)
	return tag
}

func TestUserCRUD(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	created, err := s.UserCreate(ctx, &models.UserReq{
		Username:     str("alice"),
		Password:     str("secret"),
		EmailAddress: str("a@example.com"),
		AllergicInfo: str("peanuts"),
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "alice", created.Username)
	assert.Equal(t, "peanuts", *created.AllergicInfo)
	assert.Nil(t, created.FirstName)

	got, err := s.UserGet(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Username, got.Username)
	assert.Equal(t, created.EmailAddress, got.EmailAddress)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))

	list, err := s.UserList(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	time.Sleep(5 * time.Millisecond)
	updated, err := s.UserUpdate(ctx, created.ID, &models.UserReq{FirstName: str("Alice")})
	require.NoError(t, err)
	assert.Equal(t, "Alice", *updated.FirstName)
	assert.Equal(t, "alice", updated.Username)
	assert.Equal(t, "a@example.com", updated.EmailAddress)
	assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	require.NoError(t, s.UserDelete(ctx, created.ID))
	_, err = s.UserGet(ctx, created.ID)
	assert.True(t, errors.Is(err, db.ErrNotFound))
}

// Create answers with the row as stored, so a later read returns the same values.
func TestCreateMatchesGet(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	user := createUser(t, s, "alice")
	gotUser, err := s.UserGet(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, *gotUser, *user)

	tag := createTag(t, s, "vegan")
	gotTag, err := s.FoodTagGet(ctx, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, *gotTag, *tag)

	eats := createEats(t, s, user.ID, "Soup", tag.ID)
	gotEats, err := s.EatsGet(ctx, eats.ID)
	require.NoError(t, err)
	assert.Equal(t, *gotEats, *eats)

	dibs, err := s.DibsCreate(ctx, &models.DibsReq{DibStatus: str("pending"), UserID: u64(user.ID), EatsID: u64(eats.ID)})
	require.NoError(t, err)
	gotDibs, err := s.DibsGet(ctx, dibs.ID)
	require.NoError(t, err)
	assert.Equal(t, *gotDibs, *dibs)

	review, err := s.ReviewCreate(ctx, &models.ReviewReq{Rating: num(5), Comment: str("great"), UserID: u64(user.ID), EatsID: u64(eats.ID)})
	require.NoError(t, err)
	gotReview, err := s.ReviewGet(ctx, review.ID)
	require.NoError(t, err)
	assert.Equal(t, *gotReview, *review)
}

func TestUserPasswordIsHashed(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	u := createUser(t, s, "alice")

	stored := db.User{}
	require.NoError(t, s.db.First(&stored, u.ID).Error)
	assert.NotEqual(t, "p", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("p")))

	_, err := s.UserUpdate(ctx, u.ID, &models.UserReq{Password: str("changed")})
	require.NoError(t, err)
	require.NoError(t, s.db.First(&stored, u.ID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("changed")))
}

func TestUserCreateValidation(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	_, err := s.UserCreate(ctx, &models.UserReq{
		Username:     str(""),
		Password:     str("p"),
		EmailAddress: str("a@example.com"),
	})
	assert.True(t, isValidationErr(err))

	_, err = s.UserCreate(ctx, &models.UserReq{
		Username:     str("bob"),
		Password:     str("p"),
		EmailAddress: str("bob.example.com"),
	})
	assert.True(t, isValidationErr(err))

	_, err = s.UserCreate(ctx, &models.UserReq{
		Username:     str("bob"),
		EmailAddress: str("b@example.com"),
	})
	assert.True(t, isValidationErr(err))

	list, err := s.UserList(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUserUniqueConstraints(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	createUser(t, s, "alice")

	_, err := s.UserCreate(ctx, &models.UserReq{
		Username:     str("other"),
		Password:     str("p"),
		EmailAddress: str("alice@example.com"),
	})
	assert.True(t, isConstraintErr(err))

	_, err = s.UserCreate(ctx, &models.UserReq{
		Username:     str("alice"),
		Password:     str("p"),
		EmailAddress: str("fresh@example.com"),
	})
	assert.True(t, isConstraintErr(err))

	list, err := s.UserList(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestNotFound(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	_, err := s.UserGet(ctx, 99)
	assert.True(t, errors.Is(err, db.ErrNotFound))
	_, err = s.EatsUpdate(ctx, 99, &models.EatsReq{Quantity: num(1)})
	assert.True(t, errors.Is(err, db.ErrNotFound))
	assert.True(t, errors.Is(s.DibsDelete(ctx, 99), db.ErrNotFound))
	_, err = s.ReviewGet(ctx, 99)
	assert.True(t, errors.Is(err, db.ErrNotFound))
	assert.True(t, errors.Is(s.FoodTagDelete(ctx, 99), db.ErrNotFound))

	list, err := s.DibsList(ctx)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestEatsQuantity(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	u := createUser(t, s, "alice")

	req := func(q int) *models.EatsReq {
		return &models.EatsReq{
			EatsName:    str("Soup"),
			Category:    str("Dinner"),
			Description: str("d"),
			CookTime:    str("30m"),
			Quantity:    num(q),
			Perishable:  flag(false),
			UserID:      u64(u.ID),
		}
	}

	_, err := s.EatsCreate(ctx, req(-1))
	assert.True(t, isValidationErr(err))

	e, err := s.EatsCreate(ctx, req(0))
	require.NoError(t, err)
	assert.Equal(t, 0, e.Quantity)
	assert.True(t, e.IsAvailable)
	assert.False(t, e.Perishable)

	_, err = s.EatsUpdate(ctx, e.ID, &models.EatsReq{Quantity: num(-3)})
	assert.True(t, isValidationErr(err))

	got, err := s.EatsGet(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Quantity)
}

func TestEatsPartialUpdate(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	u := createUser(t, s, "alice")
	e := createEats(t, s, u.ID, "Soup")

	time.Sleep(5 * time.Millisecond)
	updated, err := s.EatsUpdate(ctx, e.ID, &models.EatsReq{IsAvailable: flag(false), Description: str("cold")})
	require.NoError(t, err)

	assert.False(t, updated.IsAvailable)
	assert.Equal(t, "cold", updated.Description)
	assert.Equal(t, e.EatsName, updated.EatsName)
	assert.Equal(t, e.Category, updated.Category)
	assert.Equal(t, e.CookTime, updated.CookTime)
	assert.Equal(t, e.Quantity, updated.Quantity)
	assert.Equal(t, e.Perishable, updated.Perishable)
	assert.Equal(t, e.UserID, updated.UserID)
	assert.True(t, e.CreatedAt.Equal(updated.CreatedAt))
	assert.True(t, updated.UpdatedAt.After(e.UpdatedAt))
}

func TestEatsTags(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	u := createUser(t, s, "alice")
	vegan := createTag(t, s, "vegan")
	spicy := createTag(t, s, "spicy")

	e := createEats(t, s, u.ID, "Curry", spicy.ID, vegan.ID, vegan.ID)
	assert.Equal(t, []uint64{vegan.ID, spicy.ID}, e.FoodTagIDs)
	assert.Equal(t, []string{"vegan", "spicy"}, e.Tags)

	tag, err := s.FoodTagGet(ctx, vegan.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Curry"}, tag.EatsNames)

	updated, err := s.EatsUpdate(ctx, e.ID, &models.EatsReq{FoodTagIDs: ids(spicy.ID)})
	require.NoError(t, err)
	assert.Equal(t, []string{"spicy"}, updated.Tags)

	// absent food_tag_ids leaves the links alone
	updated, err = s.EatsUpdate(ctx, e.ID, &models.EatsReq{Quantity: num(5)})
	require.NoError(t, err)
	assert.Equal(t, []string{"spicy"}, updated.Tags)

	_, err = s.EatsUpdate(ctx, e.ID, &models.EatsReq{FoodTagIDs: ids(404)})
	assert.True(t, isConstraintErr(err))

	// the failed request rolled back
	got, err := s.EatsGet(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"spicy"}, got.Tags)

	require.NoError(t, s.FoodTagDelete(ctx, spicy.ID))
	got, err = s.EatsGet(ctx, e.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Tags)
	assert.Empty(t, got.FoodTagIDs)
}

func TestDibsAndReviews(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	giver := createUser(t, s, "giver")
	taker := createUser(t, s, "taker")
	e := createEats(t, s, giver.ID, "Soup")

	_, err := s.DibsCreate(ctx, &models.DibsReq{DibStatus: str(""), UserID: u64(taker.ID), EatsID: u64(e.ID)})
	assert.True(t, isValidationErr(err))

	d, err := s.DibsCreate(ctx, &models.DibsReq{DibStatus: str("pending"), UserID: u64(taker.ID), EatsID: u64(e.ID)})
	require.NoError(t, err)
	assert.Equal(t, "taker", d.UserName)
	assert.Equal(t, "Soup", d.EatsName)

	d, err = s.DibsUpdate(ctx, d.ID, &models.DibsReq{DibStatus: str("claimed")})
	require.NoError(t, err)
	assert.Equal(t, "claimed", d.DibStatus)
	assert.Equal(t, taker.ID, d.UserID)

	for _, rating := range []int{0, 6} {
		_, err := s.ReviewCreate(ctx, &models.ReviewReq{Rating: num(rating), UserID: u64(taker.ID), EatsID: u64(e.ID)})
		assert.True(t, isValidationErr(err), "rating %d", rating)
	}
	for _, rating := range []int{1, 5} {
		r, err := s.ReviewCreate(ctx, &models.ReviewReq{Rating: num(rating), UserID: u64(taker.ID), EatsID: u64(e.ID)})
		require.NoError(t, err)
		assert.Equal(t, rating, r.Rating)
		assert.Equal(t, "taker", r.UserName)
	}

	takerResp, err := s.UserGet(ctx, taker.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"claimed"}, takerResp.DibStatuses)
	assert.Equal(t, []int{1, 5}, takerResp.GivenReviewRatings)
	assert.Empty(t, takerResp.ReceivedReviewRatings)

	giverResp, err := s.UserGet(ctx, giver.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Soup"}, giverResp.EatNames)
	assert.Equal(t, []int{1, 5}, giverResp.ReceivedReviewRatings)

	eatsResp, err := s.EatsGet(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"claimed"}, eatsResp.DibStatuses)
	assert.Equal(t, []int{1, 5}, eatsResp.ReviewRatings)

	_, err = s.DibsCreate(ctx, &models.DibsReq{DibStatus: str("pending"), UserID: u64(404), EatsID: u64(e.ID)})
	assert.True(t, isConstraintErr(err))
}

func TestEatsDeleteCascades(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	u := createUser(t, s, "alice")
	tag := createTag(t, s, "vegan")
	e := createEats(t, s, u.ID, "Soup", tag.ID)

	_, err := s.DibsCreate(ctx, &models.DibsReq{DibStatus: str("pending"), UserID: u64(u.ID), EatsID: u64(e.ID)})
	require.NoError(t, err)
	_, err = s.ReviewCreate(ctx, &models.ReviewReq{Rating: num(4), UserID: u64(u.ID), EatsID: u64(e.ID)})
	require.NoError(t, err)

	require.NoError(t, s.EatsDelete(ctx, e.ID))

	_, err = s.EatsGet(ctx, e.ID)
	assert.True(t, errors.Is(err, db.ErrNotFound))

	dibs, err := s.DibsList(ctx)
	require.NoError(t, err)
	assert.Empty(t, dibs)
	reviews, err := s.ReviewList(ctx)
	require.NoError(t, err)
	assert.Empty(t, reviews)

	var links int64
	require.NoError(t, s.db.Model(&db.EatsFoodTag{}).Count(&links).Error)
	assert.Zero(t, links)

	// the tag itself survives
	_, err = s.FoodTagGet(ctx, tag.ID)
	assert.NoError(t, err)
}

func TestUserDeleteCascades(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	giver := createUser(t, s, "giver")
	taker := createUser(t, s, "taker")
	mine := createEats(t, s, giver.ID, "Soup")
	theirs := createEats(t, s, taker.ID, "Bread")

	_, err := s.DibsCreate(ctx, &models.DibsReq{DibStatus: str("pending"), UserID: u64(taker.ID), EatsID: u64(mine.ID)})
	require.NoError(t, err)
	_, err = s.DibsCreate(ctx, &models.DibsReq{DibStatus: str("pending"), UserID: u64(giver.ID), EatsID: u64(theirs.ID)})
	require.NoError(t, err)
	_, err = s.ReviewCreate(ctx, &models.ReviewReq{Rating: num(3), UserID: u64(giver.ID), EatsID: u64(theirs.ID)})
	require.NoError(t, err)

	require.NoError(t, s.UserDelete(ctx, giver.ID))

	eats, err := s.EatsList(ctx)
	require.NoError(t, err)
	require.Len(t, eats, 1)
	assert.Equal(t, theirs.ID, eats[0].ID)
	assert.Empty(t, eats[0].DibStatuses)
	assert.Empty(t, eats[0].ReviewRatings)

	dibs, err := s.DibsList(ctx)
	require.NoError(t, err)
	assert.Empty(t, dibs)

	users, err := s.UserList(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "taker", users[0].Username)
}

func TestFoodTagCRUD(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	_, err := s.FoodTagCreate(ctx, &models.FoodTagReq{Name: str("")})
	assert.True(t, isValidationErr(err))
	_, err = s.FoodTagCreate(ctx, &models.FoodTagReq{})
	assert.True(t, isValidationErr(err))

	tag := createTag(t, s, "vegan")
	_, err = s.FoodTagCreate(ctx, &models.FoodTagReq{Name: str("vegan")})
	assert.True(t, isConstraintErr(err))

	renamed, err := s.FoodTagUpdate(ctx, tag.ID, &models.FoodTagReq{Name: str("plant based")})
	require.NoError(t, err)
	assert.Equal(t, "plant based", renamed.Name)

	tags, err := s.FoodTagList(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "plant based", tags[0].Name)
}

func TestPing(t *testing.T) {
	s := newTestService(t)
	assert.NoError(t, s.Ping(context.Background()))
}
