package settings

import (
	"time"

	"github.com/go-playground/validator/v10"
)

type Settings struct {
	MonitorName string `validate:"required,max=128"`
	TargetURL   string `validate:"required,httpurl"`

	// how long the latest snapshot outlives the monitor that produced it
	StatusRetention time.Duration `validate:"min=1s"`
}

func (s Settings) Validate(v *validator.Validate) error {
	return v.Struct(s)
}
