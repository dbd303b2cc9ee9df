package form

import (
	"errors"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/asaskevich/govalidator"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ValidationError is returned before any network call when a draft cannot
// be submitted. Violations are keyed by field path.
type ValidationError struct {
	Violations map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Violations))
	for k := range e.Violations {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Violations[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Messages returns the human readable violations, sorted by field.
func (e *ValidationError) Messages() []string {
	keys := make([]string, 0, len(e.Violations))
	for k := range e.Violations {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, e.Violations[k])
	}
	return out
}

// IsValidationError reports whether err carries draft violations.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ValidateStruct is validation.ValidateStruct that folds the result into a
// ValidationError.
func ValidateStruct(structPtr interface{}, rules ...*validation.FieldRules) error {
	err := validation.ValidateStruct(structPtr, rules...)
	if err == nil {
		return nil
	}
	var ve validation.Errors
	if !errors.As(err, &ve) {
		return err
	}
	out := &ValidationError{Violations: make(map[string]string, len(ve))}
	for field, fe := range ve {
		out.Violations[field] = formatErrMsg(fe.Error())
	}
	return out
}

func formatErrMsg(s string) string {
	return ucfirst(strings.Trim(s, " ."))
}

func ucfirst(str string) string {
	for i, v := range str {
		return string(unicode.ToUpper(v)) + str[i+1:]
	}
	return ""
}

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// isLink accepts absolute URLs and site-relative paths.
var isLink = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if strings.HasPrefix(s, "/") && govalidator.IsRequestURI(s) {
		return nil
	}
	if govalidator.IsURL(s) {
		return nil
	}
	return errors.New("must be a URL or a path starting with /")
})

var isHexColor = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if s == "" || govalidator.IsHexcolor(s) {
		return nil
	}
	return errors.New("must be a hex colour such as #ffffff")
})
