package errors

import "errors"

var (
	ErrUnauthorized         = errors.New("caller is not an administrator")
	ErrInvalidAddress       = errors.New("invalid administrator address")
	ErrAlreadyAdministrator = errors.New("address is already an administrator")
	ErrNotAdministrator     = errors.New("address is not an administrator")
	ErrLastAdministrator    = errors.New("cannot revoke the last administrator")
)
