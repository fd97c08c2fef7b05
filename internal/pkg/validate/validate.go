package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// v is the package-level singleton validator. It is initialised once at
// package load time. Any custom type registrations must be made during init()
// before the first call to Struct.
var v = validator.New()

func init() {
	// Tag implementations delegate to the exported helpers so the rules stay
	// identical whichever way a caller validates. "email" overrides the
	// library's built-in rule with the same helper the handlers use.
	_ = v.RegisterValidation("email", func(fl validator.FieldLevel) bool {
		ok, _ := Email(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		ok, _ := Password(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		ok, _ := Username(fl.Field().String())
		return ok
	})
}

var (
	// Syntactic check only: local part, "@", domain containing a dot.
	// Deliverability is out of scope.
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// 3-20 word characters; \p{L}/\p{N} admit non-ASCII scripts.
	usernameRe = regexp.MustCompile(`^[\p{L}\p{N}_]{3,20}$`)
)

// Email reports whether s looks like an email address.
func Email(s string) (bool, string) {
	if !emailRe.MatchString(s) {
		return false, "invalid email address"
	}
	return true, ""
}

// Password reports whether s satisfies the password policy: 8-72 characters
// with at least one lowercase letter, one uppercase letter and one digit. The
// upper bound is bcrypt's 72-byte input limit; anything longer must be caught
// here so hashing never fails on accepted input.
func Password(s string) (bool, string) {
	if utf8.RuneCountInString(s) < 8 {
		return false, "password must be at least 8 characters"
	}
	if len(s) > 72 {
		return false, "password must be at most 72 bytes"
	}
	var lower, upper, digit bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !lower || !upper || !digit {
		return false, "password must contain a lowercase letter, an uppercase letter and a digit"
	}
	return true, ""
}

// Username reports whether s is a valid username: 3-20 characters, letters,
// digits and underscores only.
func Username(s string) (bool, string) {
	if !usernameRe.MatchString(s) {
		return false, "username must be 3-20 characters of letters, digits or underscores"
	}
	return true, ""
}

// Struct validates the given struct using its validate tags.
// Returns a human-readable error string or nil.
func Struct(s interface{}) error {
	if err := v.Struct(s); err != nil {
		ve, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		var msgs []string
		for _, fe := range ve {
			msgs = append(msgs, messageFor(fe))
		}
		return fmt.Errorf("%s", strings.Join(msgs, "; "))
	}
	return nil
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "email":
		_, msg := Email(asString(fe))
		return msg
	case "password":
		_, msg := Password(asString(fe))
		return msg
	case "username":
		_, msg := Username(asString(fe))
		return msg
	case "required":
		return fmt.Sprintf("%s is required", strings.ToLower(fe.Field()))
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", strings.ToLower(fe.Field()), fe.Param())
	default:
		return fmt.Sprintf("field '%s' failed '%s'", fe.Field(), fe.Tag())
	}
}

func asString(fe validator.FieldError) string {
	if s, ok := fe.Value().(string); ok {
		return s
	}
	return ""
}
