package repositories

import (
	"errors"
)

var (
	ErrStatusNotFound = errors.New("no status has been published yet")
)
