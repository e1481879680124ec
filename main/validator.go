package main

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"github.com/hnzhou16/project-cocraft-redesign/internal/design"
)

var Validate *validator.Validate

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// init before main function
func init() {
	Validate = validator.New(validator.WithRequiredStructEnabled())
	_ = Validate.RegisterValidation("valid_email", ValidateEmail)
	_ = Validate.RegisterValidation("valid_style", ValidateStyle)
}

func ValidateEmail(fl validator.FieldLevel) bool {
	return emailRegex.MatchString(fl.Field().String())
}

func ValidateStyle(fl validator.FieldLevel) bool {
	return design.IsValid(fl.Field().String())
}

// validationMessage turns the first failed field into a message fit for the client.
func validationMessage(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return err.Error()
	}

	switch errs[0].Field() {
	case "Style":
		styles := lo.Map(design.Styles, func(s design.Style, _ int) string { return string(s) })
		return "style must be one of: " + strings.Join(styles, ", ")
	case "Email":
		return "email is invalid"
	default:
		return errs[0].Error()
	}
}
