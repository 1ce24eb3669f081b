package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		amount  string
		wantErr error
	}{
		{"valid", "50.00", nil},
		{"valid integer", "50", nil},
		{"valid one decimal", "0.5", nil},
		{"smallest valid", "0.01", nil},
		{"upper bound", "999999.99", nil},
		{"zero", "0", ErrInvalidAmount},
		{"negative", "-10.00", ErrInvalidAmount},
		{"over bound", "1000000.00", ErrAmountTooLarge},
		{"three decimals", "10.005", ErrAmountPrecision},
		{"many decimals", "0.0001", ErrAmountPrecision},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateAmount(decimal.RequireFromString(tt.amount))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validateAmount(%s) = %v, want %v", tt.amount, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDescription(t *testing.T) {
	t.Parallel()

	if err := validateDescription("lunch"); err != nil {
		t.Errorf("valid description: %v", err)
	}
	if err := validateDescription(""); !errors.Is(err, ErrEmptyDescription) {
		t.Errorf("empty description = %v, want ErrEmptyDescription", err)
	}
	if err := validateDescription(strings.Repeat("a", 500)); err != nil {
		t.Errorf("500-char description should be allowed: %v", err)
	}
	if err := validateDescription(strings.Repeat("a", 501)); !errors.Is(err, ErrDescriptionTooLong) {
		t.Errorf("501-char description = %v, want ErrDescriptionTooLong", err)
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	valid := []string{"a@b.co", "alice@example.com", "x.y@sub.domain.org"}
	for _, email := range valid {
		if err := validateEmail(email); err != nil {
			t.Errorf("validateEmail(%q) = %v, want nil", email, err)
		}
	}

	invalid := []string{"", "nodomain", "@example.com", "a@", "a@nodot", "a@.com", "a@com."}
	for _, email := range invalid {
		if err := validateEmail(email); !errors.Is(err, ErrInvalidEmail) {
			t.Errorf("validateEmail(%q) = %v, want ErrInvalidEmail", email, err)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	if err := validatePassword("secret1"); err != nil {
		t.Errorf("valid password: %v", err)
	}
	if err := validatePassword("short"); !errors.Is(err, ErrPasswordTooWeak) {
		t.Errorf("short password = %v, want ErrPasswordTooWeak", err)
	}
	if err := validatePassword(strings.Repeat("p", 101)); !errors.Is(err, ErrPasswordTooLong) {
		t.Errorf("long password = %v, want ErrPasswordTooLong", err)
	}
}

func TestValidateName(t *testing.T) {
	t.Parallel()

	if err := validateName("Al"); err != nil {
		t.Errorf("2-char name should be allowed: %v", err)
	}
	if err := validateName("A"); !errors.Is(err, ErrInvalidName) {
		t.Errorf("1-char name = %v, want ErrInvalidName", err)
	}
	if err := validateName(strings.Repeat("n", 51)); !errors.Is(err, ErrInvalidName) {
		t.Errorf("51-char name = %v, want ErrInvalidName", err)
	}
}
