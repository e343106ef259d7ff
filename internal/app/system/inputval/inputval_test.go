package inputval

import (
	"errors"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"User.Name+tag@Example.org", true},
		{"", false},
		{"no-at-sign", false},
		{"@example.com", false},
		{"user@", false},
		{"user @example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := IsValidEmail(tt.email); got != tt.want {
				t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

type phonePayload struct {
	Mobile string `json:"mobile"`
}

func (p phonePayload) validate(v *Validator) error {
	return validation.ValidateStruct(&p, validation.Field(&p.Mobile, v.Phone()))
}

func TestPhone_LenientByDefault(t *testing.T) {
	v := New(Options{})
	for _, in := range []string{"555", "call me", "", "+1 202 555 0143"} {
		if err := (phonePayload{Mobile: in}).validate(v); err != nil {
			t.Errorf("lenient Phone rejected %q: %v", in, err)
		}
	}
}

func TestPhone_Strict(t *testing.T) {
	v := New(Options{StrictPhone: true, PhoneRegion: "US"})

	tests := []struct {
		in      string
		wantErr bool
	}{
		{"", false},
		{"+1 650 253 0000", false},
		{"(650) 253-0000", false},
		{"555", true},
		{"not a number", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			err := (phonePayload{Mobile: tt.in}).validate(v)
			if (err != nil) != tt.wantErr {
				t.Errorf("Phone(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
		})
	}
}

type signup struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s signup) validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Email, Required, Email),
		validation.Field(&s.Password, Required),
	)
}

func TestMessage(t *testing.T) {
	const fallback = "Missing email or password"

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"missing field", signup{Email: "a@example.com"}.validate(), fallback},
		{"both missing", signup{}.validate(), fallback},
		{"bad format", signup{Email: "nope", Password: "x"}.validate(), "email must be a valid email address"},
		{"foreign error", errors.New("boom"), fallback},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Message(tt.err, fallback); got != tt.want {
				t.Errorf("Message() = %q, want %q", got, tt.want)
			}
		})
	}
}
