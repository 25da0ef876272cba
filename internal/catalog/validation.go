package catalog

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/five82/asana/internal/pose"
)

// FieldError is one failed rule on one form field.
type FieldError struct {
	Field string
	Tag   string
	Param string
}

// ValidationError reports invalid form input. No request was sent.
type ValidationError struct {
	Fields []FieldError
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+englishMessage(f))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Messages maps each invalid field to a message in lang.
func (e *ValidationError) Messages(lang pose.Language) map[string]string {
	out := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		if lang == pose.LangEN {
			out[f.Field] = englishMessage(f)
		} else {
			out[f.Field] = chineseMessage(f)
		}
	}
	return out
}

// First returns the message for the first invalid field in lang.
func (e *ValidationError) First(lang pose.Language) string {
	if len(e.Fields) == 0 {
		return ""
	}
	f := e.Fields[0]
	if lang == pose.LangEN {
		return f.Field + " " + englishMessage(f)
	}
	return chineseMessage(f)
}

func englishMessage(f FieldError) string {
	switch f.Tag {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", f.Param)
	case "eqfield":
		return "must match password"
	default:
		return "is invalid"
	}
}

func chineseMessage(f FieldError) string {
	switch f.Tag {
	case "required":
		return "請填寫所有欄位"
	case "min":
		return fmt.Sprintf("密碼長度至少為%s個字符", f.Param)
	case "eqfield":
		return "兩次輸入的密碼不匹配"
	default:
		return "輸入無效"
	}
}

type formValidator struct {
	v *validator.Validate
}

func newValidator() *formValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return strings.ToLower(fld.Name)
		}
		return name
	})
	return &formValidator{v: v}
}

// validate returns a *ValidationError with fields in a stable order.
func (f *formValidator) validate(s any) error {
	err := f.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{}
	for _, e := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: e.Field(), Tag: e.Tag(), Param: e.Param()})
	}
	sort.SliceStable(out.Fields, func(i, j int) bool {
		a, b := out.Fields[i], out.Fields[j]
		if ra, rb := tagRank(a.Tag), tagRank(b.Tag); ra != rb {
			return ra < rb
		}
		return fieldRank(a.Field) < fieldRank(b.Field)
	})
	return out
}

// tagRank orders failed rules: missing fields, then a confirmation
// mismatch, then everything else.
func tagRank(tag string) int {
	switch tag {
	case "required":
		return 0
	case "eqfield":
		return 1
	default:
		return 2
	}
}

func fieldRank(field string) int {
	switch field {
	case "username":
		return 0
	case "password":
		return 1
	default:
		return 2
	}
}
