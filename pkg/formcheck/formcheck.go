// Package formcheck validates form structs and reports inline messages per
// field, the way a browser form shows them under each input.
package formcheck

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidForm = errors.New("invalid form")

// Fields maps a form field name to its message.
type Fields map[string]string

// An Error carries every failed field of one form.
type Error struct {
	Fields Fields
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("%s: %s", ErrInvalidForm, strings.Join(parts, "; "))
}

func (e *Error) Is(target error) bool {
	return target == ErrInvalidForm
}

// FieldsOf returns the failed fields of err, or nil.
func FieldsOf(err error) Fields {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Fields
	}
	return nil
}

var (
	looseEmail = regexp.MustCompile(`\S+@\S+\.\S+`)
	tenDigits  = regexp.MustCompile(`^\d{10}$`)
)

type Checker struct {
	v        *validator.Validate
	messages map[string]string
}

// New builds a Checker. Messages are keyed by "<field>.<rule>" where the
// field name comes from the `form` struct tag.
func New(messages map[string]string) *Checker {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	mustRegister(v, "looseemail", func(fl validator.FieldLevel) bool {
		return looseEmail.MatchString(fl.Field().String())
	})
	mustRegister(v, "digits10", func(fl validator.FieldLevel) bool {
		return tenDigits.MatchString(fl.Field().String())
	})
	return &Checker{v: v, messages: messages}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Errorf("formcheck: register %q: %w", tag, err)) // develop mistake
	}
}

// Check returns nil for a valid form and an [*Error] otherwise.
func (c *Checker) Check(form any) error {
	const op = "Checker.Check"

	err := c.v.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%s: %w", op, err)
	}

	fields := make(Fields, len(verrs))
	for _, fe := range verrs {
		key := fe.Field() + "." + fe.Tag()
		msg, ok := c.messages[key]
		if !ok {
			msg = fmt.Sprintf("%s is invalid.", fe.Field())
		}
		fields[fe.Field()] = msg
	}
	return &Error{Fields: fields}
}
