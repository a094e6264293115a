// Package validation holds the field checks run before an entity is written.
package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator"
)

var validate = newValidator()

// Error is a field-level rejection. Nothing has been written when it is returned.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Field + ": " + e.Message
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func check(field string, value interface{}, rule, message string) error {
	if err := validate.Var(value, rule); err != nil {
		return &Error{Field: field, Message: message}
	}
	return nil
}

func Username(username string) error {
	return check("username", username, "required", "username cannot be empty")
}

// EmailAddress only asks for an "@"; anything stricter rejects addresses users already have.
func EmailAddress(email string) error {
	return check("email_address", email, "required,contains=@", "invalid email address")
}

func EatsName(name string) error {
	return check("eats_name", name, "required", "eats name cannot be empty")
}

func Quantity(quantity int) error {
	return check("quantity", quantity, "gte=0", "quantity cannot be negative")
}

func DibStatus(status string) error {
	return check("dib_status", status, "required", "dib status cannot be empty")
}

func Rating(rating int) error {
	return check("rating", rating, "gte=1,lte=5", "rating must be between 1 and 5")
}

func TagName(name string) error {
	return check("name", name, "required", "tag name cannot be empty")
}

// Struct runs the `validate` tags of a request payload and reports the first failure.
func Struct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		fe := errs[0]
		msg := "failed on " + fe.Tag()
		if fe.Tag() == "required" {
			msg = "is required"
		}
		return &Error{Field: fe.Field(), Message: msg}
	}
	return err
}
