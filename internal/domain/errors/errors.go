package errors

import "errors"

var (
	ErrTokenUnavailable  = errors.New("token exchange failed")
	ErrTokenNotCached    = errors.New("token not cached")
	ErrSourceUnavailable = errors.New("tour source unavailable")
	ErrTourNotFound      = errors.New("tour not found")
	ErrDateUnavailable   = errors.New("tour not available on this date")
	ErrPriceNotFound     = errors.New("no price for service type")
	ErrInvalidRequest    = errors.New("invalid booking request")
)
