package iam

import "fmt"

// Effect is the outcome of a statement
type Effect string

const (
	EffectAllow Effect = "Allow"
	EffectDeny  Effect = "Deny"
)

// ParseEffect accepts "Allow" or "Deny"
func ParseEffect(s string) (Effect, error) {
	switch e := Effect(s); e {
	case EffectAllow, EffectDeny:
		return e, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidEffect, s)
}

const (
	// ConditionStringEquals is the operator used for external ID checks
	ConditionStringEquals = "StringEquals"
	// ExternalIDKey is the condition key compared against the external ID
	ExternalIDKey = "sts:ExternalId"
)

// Statement is a single permission rule
type Statement struct {
	effect    Effect
	action    Action
	resource  string
	sid       string
	principal *principal
	condition *condition
}

type principal struct {
	kind  PrincipalKind
	value PrincipalValue
}

type condition struct {
	operator string
	values   map[string]any
}

// StatementOption sets an optional field at construction
type StatementOption func(*Statement)

// WithResource sets the statement resource
func WithResource(resource string) StatementOption {
	return func(s *Statement) { s.resource = resource }
}

// WithSid sets the statement identifier
func WithSid(sid string) StatementOption {
	return func(s *Statement) { s.sid = sid }
}

// NewStatement builds a statement. The effect must be Allow or Deny and the
// action must name at least one action.
func NewStatement(effect Effect, action Action, opts ...StatementOption) (*Statement, error) {
	if _, err := ParseEffect(string(effect)); err != nil {
		return nil, err
	}
	if action.IsEmpty() {
		return nil, ErrEmptyAction
	}
	s := &Statement{effect: effect, action: action}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// MustStatement is NewStatement for literal definitions; it panics on error
func MustStatement(effect Effect, action Action, opts ...StatementOption) *Statement {
	s, err := NewStatement(effect, action, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Effect returns Allow or Deny
func (s *Statement) Effect() Effect { return s.effect }

// Action returns the action in the form it was given
func (s *Statement) Action() Action { return s.action }

// Resource returns the resource, or "" when unset
func (s *Statement) Resource() string { return s.resource }

// Sid returns the statement identifier, or "" when unset
func (s *Statement) Sid() string { return s.sid }

// Principal returns the principal kind and value, if one is set
func (s *Statement) Principal() (PrincipalKind, PrincipalValue, bool) {
	if s.principal == nil {
		return "", nil, false
	}
	return s.principal.kind, s.principal.value, true
}

// Condition returns the condition operator and its key/value mapping, if set
func (s *Statement) Condition() (string, map[string]any, bool) {
	if s.condition == nil {
		return "", nil, false
	}
	return s.condition.operator, s.condition.values, true
}

// SetStatementID replaces the statement identifier
func (s *Statement) SetStatementID(sid string) *Statement {
	s.sid = sid
	return s
}

// SetPrincipal replaces any existing principal
func (s *Statement) SetPrincipal(kind PrincipalKind, value PrincipalValue) *Statement {
	s.principal = &principal{kind: kind, value: value}
	return s
}

// SetAccountPrincipal sets an AWS principal for an account. An empty resource
// names the account root. A non-empty externalID also sets the external ID condition.
func (s *Statement) SetAccountPrincipal(account Account, resource, externalID string) *Statement {
	s.SetPrincipal(PrincipalAWS, account.principal(resource))
	if externalID != "" {
		s.SetExternalID(externalID)
	}
	return s
}

// SetMultiAccountPrincipal sets an AWS principal listing several accounts in order
func (s *Statement) SetMultiAccountPrincipal(entries []AccountResource, externalID string) *Statement {
	values := make(Composite, 0, len(entries))
	literal := true
	for _, e := range entries {
		if e.Account.IsDeferred() {
			literal = false
		}
		values = append(values, e.Account.principal(e.Resource))
	}

	if literal {
		seq := make(Sequence, 0, len(values))
		for _, v := range values {
			seq = append(seq, string(v.(Literal)))
		}
		s.SetPrincipal(PrincipalAWS, seq)
	} else {
		s.SetPrincipal(PrincipalAWS, values)
	}

	if externalID != "" {
		s.SetExternalID(externalID)
	}
	return s
}

// SetUserPrincipal sets an AWS principal for a user path such as "user/Dave"
func (s *Statement) SetUserPrincipal(account Account, userPath, externalID string) *Statement {
	return s.SetAccountPrincipal(account, userPath, externalID)
}

// SetServicePrincipal sets a Service principal such as ec2.amazonaws.com
func (s *Statement) SetServicePrincipal(services PrincipalValue) *Statement {
	return s.SetPrincipal(PrincipalService, services)
}

// SetFederatedPrincipal sets a Federated principal for an identity provider
func (s *Statement) SetFederatedPrincipal(host PrincipalValue) *Statement {
	return s.SetPrincipal(PrincipalFederated, host)
}

// SetCondition replaces any existing condition
func (s *Statement) SetCondition(operator string, values map[string]any) *Statement {
	copied := make(map[string]any, len(values))
	for k, v := range values {
		copied[k] = v
	}
	s.condition = &condition{operator: operator, values: copied}
	return s
}

// SetExternalID requires sts:ExternalId to equal id
func (s *Statement) SetExternalID(id string) *Statement {
	return s.SetCondition(ConditionStringEquals, map[string]any{ExternalIDKey: id})
}

// Validate checks the fields that mutators do not guard
func (s *Statement) Validate() error {
	if _, err := ParseEffect(string(s.effect)); err != nil {
		return err
	}
	if s.action.IsEmpty() {
		return ErrEmptyAction
	}
	if s.principal != nil {
		if _, err := ParsePrincipalKind(string(s.principal.kind)); err != nil {
			return err
		}
		if IsEmptyPrincipal(s.principal.value) {
			return fmt.Errorf("%w: %s", ErrEmptyPrincipal, s.principal.kind)
		}
	}
	return nil
}
