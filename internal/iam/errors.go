package iam

import "errors"

var (
	ErrInvalidEffect        = errors.New("invalid statement effect")
	ErrEmptyAction          = errors.New("statement action is empty")
	ErrInvalidPrincipalKind = errors.New("invalid principal kind")
	ErrEmptyPrincipal       = errors.New("principal value is empty")
	ErrEmptyName            = errors.New("name is required")
	ErrEmptyDescription     = errors.New("managed policy description is required")
)
