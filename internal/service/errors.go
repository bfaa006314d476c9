package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrRegisterInvalid    = errors.New("register input invalid")
	ErrOrderStatusInvalid = errors.New("order status invalid")
	ErrMenuInputInvalid   = errors.New("menu input invalid")
	ErrCategoryInvalid    = errors.New("category input invalid")
)
