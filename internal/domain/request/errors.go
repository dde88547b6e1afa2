package request

import "errors"

var (
	ErrRequestNotFound = errors.New("request not found")
)
