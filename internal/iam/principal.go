package iam

import (
	"fmt"

	"rackiam/internal/arn"
)

// PrincipalKind names the kind of identity a statement applies to
type PrincipalKind string

const (
	PrincipalAWS       PrincipalKind = "AWS"
	PrincipalService   PrincipalKind = "Service"
	PrincipalFederated PrincipalKind = "Federated"
)

// ParsePrincipalKind accepts a kind name such as "Service"
func ParsePrincipalKind(s string) (PrincipalKind, error) {
	switch k := PrincipalKind(s); k {
	case PrincipalAWS, PrincipalService, PrincipalFederated:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPrincipalKind, s)
}

// PrincipalValue is the value side of a principal mapping.
// It is one of Literal, Sequence, Composite or Deferred.
type PrincipalValue interface {
	// Resolve returns the value to place in the rendered mapping
	Resolve() any
}

// Literal is a single principal string
type Literal string

// Resolve returns the string itself
func (l Literal) Resolve() any { return string(l) }

// Sequence is an ordered list of principal strings
type Sequence []string

// Resolve returns a copy of the list
func (s Sequence) Resolve() any { return append([]string(nil), s...) }

// Deferred wraps a reference resolved by a template collaborator, such as a
// parameter Ref or a Join expression. It is passed through untouched.
type Deferred struct {
	Ref any
}

// Resolve returns the wrapped reference
func (d Deferred) Resolve() any { return d.Ref }

// Composite is an ordered list mixing literals and deferred references
type Composite []PrincipalValue

// Resolve returns each element resolved, in order
func (c Composite) Resolve() any {
	out := make([]any, 0, len(c))
	for _, v := range c {
		out = append(out, v.Resolve())
	}
	return out
}

// IsEmptyPrincipal reports whether v would render as null or an empty list
func IsEmptyPrincipal(v PrincipalValue) bool {
	switch p := v.(type) {
	case nil:
		return true
	case Sequence:
		return len(p) == 0
	case Composite:
		return len(p) == 0
	case Deferred:
		return p.Ref == nil
	}
	return false
}

// Account identifies an AWS account by number or by a deferred reference
type Account struct {
	number string
	ref    any
}

// AccountNumber names an account by its literal ID
func AccountNumber(id string) Account {
	return Account{number: id}
}

// AccountRef names an account through a deferred reference
func AccountRef(ref any) Account {
	return Account{ref: ref}
}

// IsDeferred reports whether the account is a deferred reference
func (a Account) IsDeferred() bool {
	return a.ref != nil
}

// principal resolves the account to a principal value. Literal accounts go
// through the ARN generator; references pass through as-is.
func (a Account) principal(resource string) PrincipalValue {
	if a.ref != nil {
		return Deferred{Ref: a.ref}
	}
	return Literal(arn.GenerateAccount(a.number, resource))
}

// AccountResource pairs an account with the resource path inside it
type AccountResource struct {
	Account  Account
	Resource string
}
