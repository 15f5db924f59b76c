package cdn

import "errors"

var (
	// -- Availability --
	ErrUnreachable = errors.New("cannot connect to widget CDN")
	ErrRateLimited = errors.New("widget CDN fetch budget exhausted")

	// -- Payload --
	ErrEmptyTexts = errors.New("localized text payload is empty")
)
