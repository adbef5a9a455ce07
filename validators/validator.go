// Package validators plugs go-playground/validator into echo.
package validators

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/nft-maker-one/twitter-clone/internal/models"
)

var usernameRegex = regexp.MustCompile(`^[A-Za-z0-9_]{3,30}$`)

// CustomValidator implements echo.Validator.
type CustomValidator struct {
	validate *validator.Validate
}

// NewValidator returns a validator with the project's custom tags registered:
// "username" (3-30 letters, digits, underscores), "notblank", and
// "content=N", which counts runes after trimming and NFC normalization.
func NewValidator() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRegex.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("content", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return models.ContentLength(models.NormalizeContent(fl.Field().String())) <= limit
	})
	return &CustomValidator{validate: v}
}

// Validate checks i and flattens field errors into one readable message.
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validate.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required", "notblank":
		return field + " is required"
	case "max", "content":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "email":
		return field + " must be a valid email"
	case "eth_addr":
		return field + " must be a valid wallet address"
	case "username":
		return field + " must be 3-30 letters, digits or underscores"
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}
