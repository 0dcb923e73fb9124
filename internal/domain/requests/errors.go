package requests

import "errors"

var (
	ErrRequestNotFound = errors.New("request not found")
	ErrTypeRequired    = errors.New("request type required")
	ErrInvalidItem     = errors.New("request items need a name and a positive qty")
)
