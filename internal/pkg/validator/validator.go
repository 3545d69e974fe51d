package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate

	phoneRe      = regexp.MustCompile(`^09\d{9}$`)
	nationalIDRe = regexp.MustCompile(`^\d{10}$`)
)

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("mobile", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("nationalid", func(fl validator.FieldLevel) bool {
		return nationalIDRe.MatchString(fl.Field().String())
	})
}

// Validate struct fields. Returns field name -> failed tag, or nil.
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_": err.Error()}
	}
	out := make(map[string]string, len(errs))
	for _, fe := range errs {
		out[fe.Field()] = fe.Tag()
	}
	return out
}

// IsMobile reports whether s is a 09xxxxxxxxx mobile number.
func IsMobile(s string) bool { return phoneRe.MatchString(s) }
