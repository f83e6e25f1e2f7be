package validators

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is the root of every input error reported by this
	// package. Callers match it with [errors.Is] to answer 400.
	ErrValidation = errors.New("validation failed")

	ErrUnsupportedType = fmt.Errorf("%w: unsupported type for validation", ErrValidation)

	ErrInvalidText        = fmt.Errorf("%w: text field must be a string", ErrValidation)
	ErrInvalidNumber      = fmt.Errorf("%w: field must be a non-negative integer", ErrValidation)
	ErrInvalidItemList    = fmt.Errorf("%w: item list must be a delimited string or a list", ErrValidation)
	ErrInvalidItem        = fmt.Errorf("%w: item must be a string or an object with text", ErrValidation)
	ErrInvalidReveal      = fmt.Errorf("%w: revealed must be a boolean", ErrValidation)
	ErrEmptyCategory      = fmt.Errorf("%w: category is required", ErrValidation)
	ErrMissingItemIndex   = fmt.Errorf("%w: item_index is required", ErrValidation)
	ErrEmptyPhoto         = fmt.Errorf("%w: photo is empty", ErrValidation)
	ErrUnsupportedPhoto   = fmt.Errorf("%w: photo must be png, jpeg or gif", ErrValidation)
	ErrInvalidPhotoRef    = fmt.Errorf("%w: photo reference must be a string", ErrValidation)
	ErrInvalidRevealedMap = fmt.Errorf("%w: revealed must map categories to boolean lists", ErrValidation)
)
