package validator

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nfu-im/internship-service/internal/models"
)

// Registration format rules. Usernames are student numbers, passwords
// are alphanumeric, and registration is restricted to school mailboxes.
var (
	usernamePattern    = regexp.MustCompile(`^[A-Za-z0-9]{6,20}$`)
	passwordPattern    = regexp.MustCompile(`^[A-Za-z0-9]{8,}$`)
	schoolEmailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@.*\.edu\.tw$`)
)

// Validator wraps a configured go-playground validator instance.
type Validator struct {
	structValidator *validator.Validate
}

// New creates a validator with all custom rules registered.
func New() *Validator {
	structValidator := validator.New()
	registerCustomValidators(structValidator)
	return &Validator{structValidator: structValidator}
}

// ValidateStruct validates struct tags.
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("student_username", validateStudentUsername)
	validate.RegisterValidation("student_password", validateStudentPassword)
	validate.RegisterValidation("school_email", validateSchoolEmail)
	validate.RegisterValidation("user_role", validateUserRole)

	// Report json field names in validation errors
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateStudentUsername(fl validator.FieldLevel) bool {
	return usernamePattern.MatchString(fl.Field().String())
}

func validateStudentPassword(fl validator.FieldLevel) bool {
	return passwordPattern.MatchString(fl.Field().String())
}

func validateSchoolEmail(fl validator.FieldLevel) bool {
	return schoolEmailPattern.MatchString(fl.Field().String())
}

func validateUserRole(fl validator.FieldLevel) bool {
	_, ok := models.ParseRole(fl.Field().String())
	return ok
}
