// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type passwordInput struct {
	Password string `validate:"strong_password"`
}

type usernameInput struct {
	Username string `validate:"username"`
}

type phoneInput struct {
	Phone string `validate:"ps_phone"`
}

func TestStrongPassword(t *testing.T) {
	valid := []string{"Strong1Pass", "Aa345678", "Souq123!Demo"}
	for _, p := range valid {
		assert.NoError(t, ValidateStruct(&passwordInput{Password: p}), p)
	}

	invalid := []string{
		"short1A",       // too short
		"alllowercase1", // no upper
		"ALLUPPERCASE1", // no lower
		"NoDigitsHere",  // no number
	}
	for _, p := range invalid {
		assert.Error(t, ValidateStruct(&passwordInput{Password: p}), p)
	}
}

func TestUsernameFormat(t *testing.T) {
	valid := []string{"ahmad_k", "layla_n", "user123"}
	for _, u := range valid {
		assert.NoError(t, ValidateStruct(&usernameInput{Username: u}), u)
	}

	invalid := []string{"ab", "has space", "bad!char", "واحد"}
	for _, u := range invalid {
		assert.Error(t, ValidateStruct(&usernameInput{Username: u}), u)
	}
}

func TestPalestinianPhone(t *testing.T) {
	valid := []string{"0599123456", "0561112223"}
	for _, p := range valid {
		assert.NoError(t, ValidateStruct(&phoneInput{Phone: p}), p)
	}

	invalid := []string{"0579123456", "059912345", "05991234567", "1599123456"}
	for _, p := range invalid {
		assert.Error(t, ValidateStruct(&phoneInput{Phone: p}), p)
	}
}
