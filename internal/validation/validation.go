package validation

import (
	"github.com/go-playground/validator/v10"

	"github.com/sergeii/servermon/internal/validation/validators"
)

func New() (*validator.Validate, error) {
	validate := validator.New()
	if err := validate.RegisterValidation("httpurl", validators.ValidateHTTPURL); err != nil {
		return nil, err
	}
	return validate, nil
}
