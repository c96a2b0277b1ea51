package validators

import (
	"net/url"

	"github.com/go-playground/validator/v10"
)

// ValidateHTTPURL accepts absolute http and https URLs with a host.
func ValidateHTTPURL(fl validator.FieldLevel) bool {
	value := fl.Field().String()

	// don't validate empty value
	if value == "" {
		return true
	}

	u, err := url.Parse(value)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Hostname() != ""
}
