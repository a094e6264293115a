package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldChecks(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{"username ok", Username("alice"), false},
		{"username empty", Username(""), true},
		{"email ok", EmailAddress("a@example.com"), false},
		{"email bare at", EmailAddress("@"), false},
		{"email no at", EmailAddress("alice.example.com"), true},
		{"email empty", EmailAddress(""), true},
		{"eats name ok", EatsName("Soup"), false},
		{"eats name empty", EatsName(""), true},
		{"quantity zero", Quantity(0), false},
		{"quantity positive", Quantity(12), false},
		{"quantity negative", Quantity(-1), true},
		{"dib status ok", DibStatus("pending"), false},
		{"dib status empty", DibStatus(""), true},
		{"rating low bound", Rating(1), false},
		{"rating high bound", Rating(5), false},
		{"rating zero", Rating(0), true},
		{"rating six", Rating(6), true},
		{"tag ok", TagName("vegan"), false},
		{"tag empty", TagName(""), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.wantErr {
				assert.NoError(t, tt.err)
				return
			}
			_, ok := tt.err.(*Error)
			assert.True(t, ok, "want *Error, got %v", tt.err)
		})
	}
}

func TestErrorNamesField(t *testing.T) {
	err := Rating(9)
	vErr, ok := err.(*Error)
	if assert.True(t, ok) {
		assert.Equal(t, "rating", vErr.Field)
		assert.Equal(t, "rating: rating must be between 1 and 5", vErr.Error())
	}
}

func TestStruct(t *testing.T) {
	type payload struct {
		Name  *string `json:"name" validate:"required"`
		Count *int    `json:"count" validate:"required"`
		Extra *string `json:"extra"`
	}
	name := "x"
	count := 0

	assert.NoError(t, Struct(&payload{Name: &name, Count: &count}))

	err := Struct(&payload{Name: &name})
	vErr, ok := err.(*Error)
	if assert.True(t, ok) {
		assert.Equal(t, "count", vErr.Field)
		assert.Equal(t, "is required", vErr.Message)
	}
}
