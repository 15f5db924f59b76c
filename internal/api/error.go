package api

import "errors"

var (
	// -- Transport --
	ErrRequestFailed = errors.New("privileged API request failed")
)
