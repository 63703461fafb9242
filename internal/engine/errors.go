package engine

import "errors"

var (
	ErrValidation    = errors.New("missing required fields")
	ErrMatchNotFound = errors.New("match not found")
	ErrCardNotInHand = errors.New("card not in hand")
	ErrMatchFinished = errors.New("match already finished")
	ErrDuplicateId   = errors.New("duplicate match id")
	ErrNotFound      = errors.New("match not found for update")
)
