package contact

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Separator delimits the fields of a contact line.
const Separator = ";"

// Sentinel errors for caller-checkable conditions.
var (
	ErrFieldCount   = errors.New("contact: expected exactly 3 fields")
	ErrInvalidField = errors.New("contact: invalid field")
)

var (
	// Name separators: whitespace including \v, or a hyphen.
	fullNamePattern = regexp.MustCompile(`^[A-Za-zА-Яа-я]+([\t\n\v\f\r -][A-Za-zА-Яа-я]+){2}$`)
	phonePattern    = regexp.MustCompile(`^\+7\d{10}$`)
	emailPattern    = regexp.MustCompile("^[a-zA-Z0-9_!#$%&'*+/=?`{|}~^.-]+@[a-zA-Z0-9.-]+$")
)

// fields mirrors Contact with validation tags. Each tag is backed by one of
// the patterns above.
type fields struct {
	FullName    string `validate:"fullname"`
	PhoneNumber string `validate:"phone"`
	Email       string `validate:"contactemail"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("fullname", matches(fullNamePattern))
	_ = validate.RegisterValidation("phone", matches(phonePattern))
	_ = validate.RegisterValidation("contactemail", matches(emailPattern))
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// fieldNames maps struct field names to the names used in messages.
var fieldNames = map[string]string{
	"FullName":    "fullName",
	"PhoneNumber": "phoneNumber",
	"Email":       "email",
}

// ValidationError reports the first field that failed its pattern.
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("contact: invalid %s %q", e.Field, e.Value)
}

// Unwrap lets errors.Is match ErrInvalidField.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidField
}

// Validate checks every field of c against its pattern.
func Validate(c Contact) error {
	err := validate.Struct(fields{FullName: c.FullName, PhoneNumber: c.PhoneNumber, Email: c.Email})
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ValidationError{Field: fieldNames[fe.Field()], Value: fmt.Sprint(fe.Value())}
	}
	return fmt.Errorf("contact: validating: %w", err)
}

// Parse builds a Contact from a "fullName;phoneNumber;email" line.
// The line must split into exactly three parts, and each part must match
// its pattern. Nothing is trimmed.
func Parse(line string) (Contact, error) {
	parts := strings.Split(line, Separator)
	if len(parts) != 3 {
		return Contact{}, fmt.Errorf("%w: got %d", ErrFieldCount, len(parts))
	}
	c := New(parts[0], parts[1], parts[2])
	if err := Validate(c); err != nil {
		return Contact{}, err
	}
	return c, nil
}

// Format renders c as a "fullName;phoneNumber;email" line without a terminator.
func Format(c Contact) string {
	return c.FullName + Separator + c.PhoneNumber + Separator + c.Email
}
