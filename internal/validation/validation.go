// Package validation checks service inputs against their struct tags and reports
// every violated field in one BAD_REQUEST error.
//
// A field may carry a `msg` tag; when any of its rules fails that text is reported
// instead of the generic per-rule message.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const messageTag = "msg"

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// Validator is safe for concurrent use. Build one at startup and share it.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})

	return &Validator{validate: v}
}

// Struct validates s and returns nil or an *apperror.Error of kind BAD_REQUEST.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return apperror.Wrap(apperror.KindInternal, apperror.MessageInternal, err)
	}

	root := reflect.TypeOf(s)
	messages := make([]string, 0, len(validationErrs))
	seen := make(map[string]bool, len(validationErrs))
	for _, fe := range validationErrs {
		msg := lookupMessage(root, fe.StructNamespace())
		if msg == "" {
			msg = formatFieldError(fe)
		}
		if seen[msg] {
			continue
		}
		seen[msg] = true
		messages = append(messages, msg)
	}

	return apperror.Wrap(apperror.KindBadRequest, "Validation failed: "+strings.Join(messages, ", "), err)
}

// lookupMessage walks a namespace such as "CreateProductInput.Variants[0].Name" down
// from the root type and returns the msg tag of the last field.
func lookupMessage(root reflect.Type, namespace string) string {
	segments := strings.Split(namespace, ".")
	if len(segments) < 2 {
		return ""
	}

	t := root
	var field reflect.StructField
	for _, segment := range segments[1:] {
		if i := strings.IndexByte(segment, '['); i >= 0 {
			segment = segment[:i]
		}
		t = indirect(t)
		if t.Kind() != reflect.Struct {
			return ""
		}
		f, ok := t.FieldByName(segment)
		if !ok {
			return ""
		}
		field = f
		t = f.Type
	}
	return field.Tag.Get(messageTag)
}

func indirect(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Ptr || t.Kind() == reflect.Slice || t.Kind() == reflect.Array || t.Kind() == reflect.Map {
		t = t.Elem()
	}
	return t
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	case "slug":
		return fmt.Sprintf("%s must contain only lowercase letters, digits and dashes", fe.Field())
	default:
		return fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag())
	}
}
