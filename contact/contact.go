// Package contact holds the rules a contact must satisfy before it is stored.
// The same rules are applied by the API and by the client.
package contact

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Input is a candidate contact as received from an untrusted source.
type Input struct {
	FirstName string `json:"firstName" validate:"required,min=2,max=50,personname"`
	LastName  string `json:"lastName"  validate:"required,min=2,max=50,personname"`
	Phone     string `json:"phone"     validate:"required,number,min=7,max=15"`
}

var (
	personName     = regexp.MustCompile(`^[\p{L} '’-]+$`)
	phoneSeparator = strings.NewReplacer(" ", "", "-", "", ".", "", "(", "", ")", "", "+", "", "/", "")
)

var validate = newValidator() //nolint: gochecknoglobals // validator caches struct metadata

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		return personName.MatchString(fl.Field().String())
	})
	return v
}

// Normalize trims every field and strips phone separators.
func Normalize(in Input) Input {
	return Input{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Phone:     phoneSeparator.Replace(strings.TrimSpace(in.Phone)),
	}
}

// ValidationError lists every rule an [Input] violates.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "contact: invalid input: " + strings.Join(e.Violations, "; ")
}

// Validate checks an already normalized input and returns a [*ValidationError]
// naming each violated rule, or nil.
func Validate(in Input) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	violations := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, message(fe))
	}
	return &ValidationError{Violations: violations}
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	unit := "characters"
	if field == "phone" {
		unit = "digits"
	}

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must have at least %s %s", field, fe.Param(), unit)
	case "max":
		return fmt.Sprintf("%s must have at most %s %s", field, fe.Param(), unit)
	case "personname":
		return field + " may only contain letters, spaces, hyphens and apostrophes"
	case "number":
		return field + " may only contain digits and separators"
	default:
		return fmt.Sprintf("%s failed rule %q", field, fe.Tag())
	}
}
