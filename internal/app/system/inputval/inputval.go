// Package inputval holds the validation rules shared by request payloads.
//
// Payload types validate themselves with ozzo-validation; this package
// supplies the rules that depend on configuration (phone numbers) and turns
// validation errors into the short messages the API returns.
package inputval

import (
	"errors"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/nyaruka/phonenumbers"
)

// MsgRequired marks a missing required field. Message uses it to pick the
// caller's fallback text.
const MsgRequired = "is required"

// Required is validation.Required with a recognisable message.
var Required = validation.Required.Error(MsgRequired)

// Email checks address format only; it never performs DNS lookups.
var Email = is.Email

// IsValidEmail reports whether s is a non-empty, well-formed email address.
func IsValidEmail(s string) bool {
	return s != "" && Email.Validate(s) == nil
}

// Options configures the configurable rules.
type Options struct {
	StrictPhone bool   // reject numbers libphonenumber cannot validate
	PhoneRegion string // default region for numbers without a country code
}

// Validator carries the configured rules. The zero value accepts any phone.
type Validator struct {
	opts Options
}

// New returns a Validator for opts.
func New(opts Options) *Validator {
	if opts.PhoneRegion == "" {
		opts.PhoneRegion = "US"
	}
	return &Validator{opts: opts}
}

var errBadPhone = errors.New("must be a valid phone number")

// Phone returns a rule for mobile/whatsapp fields. Empty values pass.
// Without StrictPhone every value passes; directory data is free-form.
func (v *Validator) Phone() validation.Rule {
	return validation.By(func(value interface{}) error {
		if v == nil || !v.opts.StrictPhone {
			return nil
		}
		s, _ := value.(string)
		if p, ok := value.(*string); ok && p != nil {
			s = *p
		}
		if s == "" {
			return nil
		}
		num, err := phonenumbers.Parse(s, v.opts.PhoneRegion)
		if err != nil || !phonenumbers.IsValidNumber(num) {
			return errBadPhone
		}
		return nil
	})
}

// Message reduces a validation error to one client-facing line. If any
// field is missing, fallback is returned unchanged. Otherwise the first
// field (alphabetically) and its problem are reported.
func Message(err error, fallback string) string {
	var errs validation.Errors
	if !errors.As(err, &errs) {
		if err == nil {
			return ""
		}
		return fallback
	}
	keys := make([]string, 0, len(errs))
	for k, e := range errs {
		if e == nil {
			continue
		}
		if e.Error() == MsgRequired {
			return fallback
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return fallback
	}
	sort.Strings(keys)
	return keys[0] + " " + errs[keys[0]].Error()
}
