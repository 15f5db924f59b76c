package bundle

import "errors"

var (
	// -- Composition --
	ErrVariantNotInBundle = errors.New("selected variant is not part of the bundle")
	ErrOutOfStock         = errors.New("bundle variant is out of stock")
	ErrNoMatchingDiscount = errors.New("no discount mapped for the purchase type")

	// -- Reservation --
	ErrTransactionFailed = errors.New("could not create bundle transaction")
)
