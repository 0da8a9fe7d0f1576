package services

import "errors"

// Purchase rejections. The messages are part of the API contract and are
// surfaced verbatim to clients.
var (
	ErrAlreadyPurchased = errors.New("user already bought the ticket!")
	ErrInvalidCategory  = errors.New("invalid ticket category id provided!")
	ErrSoldOut          = errors.New("tickets sold out")
)
