package widget

import "errors"

var (
	// -- Store config --
	ErrWidgetUnpublished = errors.New("storefront widget is not published")
	ErrNoWidgetMapping   = errors.New("no widget mapped for theme and template")

	// -- Registry --
	ErrNotLoaded = errors.New("widget model not loaded for product")
)
