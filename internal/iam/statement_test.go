package iam

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewStatement_WildcardCollapses(t *testing.T) {
	s := MustStatement(EffectAllow, ActionList("*"), WithResource("*"))

	if !s.Action().IsWildcard() {
		t.Fatalf("Expected wildcard action, got %v", s.Action().Value())
	}
	if got := s.Action().Value(); got != "*" {
		t.Errorf("Expected scalar \"*\", got %#v", got)
	}
}

func TestNewStatement_ListPreserved(t *testing.T) {
	tests := [][]string{
		{"sts:AssumeRole"},
		{"s3:GetObject", "s3:PutObject"},
		{"*", "s3:GetObject"},
		{"ec2:*", "*"},
	}

	for _, names := range tests {
		s := MustStatement(EffectDeny, ActionList(names...))
		got, ok := s.Action().Value().([]string)
		if !ok {
			t.Fatalf("Expected list action for %v, got %#v", names, s.Action().Value())
		}
		if !reflect.DeepEqual(got, names) {
			t.Errorf("Expected %v, got %v", names, got)
		}
	}
}

func TestNewStatement_ScalarAction(t *testing.T) {
	s := MustStatement(EffectAllow, ActionName("s3:*"), WithResource("*"))
	if got := s.Action().Value(); got != "s3:*" {
		t.Errorf("Expected scalar s3:*, got %#v", got)
	}
	if s.Action().IsList() {
		t.Error("Expected scalar action not to be a list")
	}
}

func TestNewStatement_ListIsCopied(t *testing.T) {
	names := []string{"s3:GetObject", "s3:PutObject"}
	s := MustStatement(EffectAllow, ActionList(names...))
	names[0] = "changed"

	if s.Action().Names()[0] != "s3:GetObject" {
		t.Error("Expected action list to be independent of the caller slice")
	}
}

func TestNewStatement_Errors(t *testing.T) {
	if _, err := NewStatement("Maybe", AllActions); !errors.Is(err, ErrInvalidEffect) {
		t.Errorf("Expected ErrInvalidEffect, got %v", err)
	}
	if _, err := NewStatement(EffectAllow, ActionList()); !errors.Is(err, ErrEmptyAction) {
		t.Errorf("Expected ErrEmptyAction for empty list, got %v", err)
	}
	if _, err := NewStatement(EffectAllow, ActionName("")); !errors.Is(err, ErrEmptyAction) {
		t.Errorf("Expected ErrEmptyAction for empty name, got %v", err)
	}
}

func TestMustStatement_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected MustStatement to panic")
		}
	}()
	MustStatement("allow", AllActions)
}

func TestStatement_UnsetFields(t *testing.T) {
	s := MustStatement(EffectAllow, ActionName("s3:*"))

	if s.Resource() != "" || s.Sid() != "" {
		t.Errorf("Expected empty resource and sid, got %q %q", s.Resource(), s.Sid())
	}
	if _, _, ok := s.Principal(); ok {
		t.Error("Expected no principal")
	}
	if _, _, ok := s.Condition(); ok {
		t.Error("Expected no condition")
	}
}

func TestStatement_Sid(t *testing.T) {
	s := MustStatement(EffectAllow, ActionName("s3:*"), WithSid("Statement123456"))
	if s.Sid() != "Statement123456" {
		t.Errorf("Expected sid Statement123456, got %q", s.Sid())
	}
	s.SetStatementID("Other")
	if s.Sid() != "Other" {
		t.Errorf("Expected sid Other, got %q", s.Sid())
	}
}

func TestStatement_SetPrincipalOverwrites(t *testing.T) {
	s := MustStatement(EffectAllow, ActionList("sts:AssumeRole")).
		SetServicePrincipal(Sequence{"ec2.amazonaws.com"}).
		SetFederatedPrincipal(Literal("cognito-identity.amazonaws.com"))

	kind, value, ok := s.Principal()
	if !ok {
		t.Fatal("Expected a principal")
	}
	if kind != PrincipalFederated {
		t.Errorf("Expected Federated principal, got %s", kind)
	}
	if value.Resolve() != "cognito-identity.amazonaws.com" {
		t.Errorf("Unexpected principal value %#v", value.Resolve())
	}
}

func TestStatement_AccountPrincipal(t *testing.T) {
	s := MustStatement(EffectAllow, ActionList("sts:AssumeRole")).
		SetAccountPrincipal(AccountNumber("123456789012"), "", "")

	kind, value, _ := s.Principal()
	if kind != PrincipalAWS {
		t.Errorf("Expected AWS principal, got %s", kind)
	}
	if value.Resolve() != "arn:aws:iam::123456789012:root" {
		t.Errorf("Expected account root ARN, got %#v", value.Resolve())
	}
	if _, _, ok := s.Condition(); ok {
		t.Error("Expected no condition without an external ID")
	}
}

func TestStatement_UserPrincipal(t *testing.T) {
	s := MustStatement(EffectAllow, ActionList("sts:AssumeRole")).
		SetUserPrincipal(AccountNumber("123456789012"), "user/Dave", "")

	_, value, _ := s.Principal()
	if value.Resolve() != "arn:aws:iam::123456789012:user/Dave" {
		t.Errorf("Expected user ARN, got %#v", value.Resolve())
	}
}

type paramRef struct{ name string }

func TestStatement_DeferredAccountPassesThrough(t *testing.T) {
	ref := &paramRef{name: "AccountNumber"}
	s := MustStatement(EffectAllow, ActionList("sts:AssumeRole")).
		SetAccountPrincipal(AccountRef(ref), "", "")

	_, value, _ := s.Principal()
	if _, ok := value.(Deferred); !ok {
		t.Fatalf("Expected Deferred principal, got %T", value)
	}
	if value.Resolve() != ref {
		t.Error("Expected the deferred reference to pass through untouched")
	}
}

func TestStatement_ExternalID(t *testing.T) {
	s := MustStatement(EffectAllow, ActionList("sts:AssumeRole")).
		SetAccountPrincipal(AccountNumber("123456789012"), "", "secret")

	op, values, ok := s.Condition()
	if !ok {
		t.Fatal("Expected a condition")
	}
	if op != "StringEquals" {
		t.Errorf("Expected StringEquals, got %s", op)
	}
	want := map[string]any{"sts:ExternalId": "secret"}
	if !reflect.DeepEqual(values, want) {
		t.Errorf("Expected %v, got %v", want, values)
	}
}

func TestStatement_SetConditionOverwrites(t *testing.T) {
	values := map[string]any{"aws:SourceVpc": "vpc-1"}
	s := MustStatement(EffectDeny, AllActions).
		SetCondition("StringNotEquals", values).
		SetCondition("Bool", map[string]any{"aws:SecureTransport": false})
	values["aws:SourceVpc"] = "vpc-2"

	op, got, _ := s.Condition()
	if op != "Bool" {
		t.Errorf("Expected last condition to win, got %s", op)
	}
	if len(got) != 1 || got["aws:SecureTransport"] != false {
		t.Errorf("Unexpected condition values %v", got)
	}
}

func TestStatement_MultiAccountPrincipal(t *testing.T) {
	s := MustStatement(EffectAllow, ActionList("sts:AssumeRole")).
		SetMultiAccountPrincipal([]AccountResource{
			{Account: AccountNumber("111111111111")},
			{Account: AccountNumber("222222222222"), Resource: "user/Dave"},
		}, "ext")

	_, value, _ := s.Principal()
	seq, ok := value.(Sequence)
	if !ok {
		t.Fatalf("Expected Sequence for literal accounts, got %T", value)
	}
	want := Sequence{"arn:aws:iam::111111111111:root", "arn:aws:iam::222222222222:user/Dave"}
	if !reflect.DeepEqual(seq, want) {
		t.Errorf("Expected %v, got %v", want, seq)
	}
	if _, _, ok := s.Condition(); !ok {
		t.Error("Expected external ID condition")
	}
}

func TestStatement_MultiAccountPrincipalMixed(t *testing.T) {
	ref := &paramRef{name: "Partner"}
	s := MustStatement(EffectAllow, ActionList("sts:AssumeRole")).
		SetMultiAccountPrincipal([]AccountResource{
			{Account: AccountNumber("111111111111")},
			{Account: AccountRef(ref)},
		}, "")

	_, value, _ := s.Principal()
	if _, ok := value.(Composite); !ok {
		t.Fatalf("Expected Composite for mixed accounts, got %T", value)
	}
	got := value.Resolve().([]any)
	if len(got) != 2 || got[0] != "arn:aws:iam::111111111111:root" || got[1] != ref {
		t.Errorf("Unexpected resolved principals %#v", got)
	}
}

func TestStatement_Validate(t *testing.T) {
	s := MustStatement(EffectAllow, AllActions).SetPrincipal("Robot", Literal("x"))
	if err := s.Validate(); !errors.Is(err, ErrInvalidPrincipalKind) {
		t.Errorf("Expected ErrInvalidPrincipalKind, got %v", err)
	}

	s.SetPrincipal(PrincipalAWS, Literal("*"))
	if err := s.Validate(); err != nil {
		t.Errorf("Expected valid statement, got %v", err)
	}
}

func TestStatement_ValidateEmptyPrincipal(t *testing.T) {
	tests := []struct {
		name  string
		value PrincipalValue
	}{
		{"empty sequence", Sequence{}},
		{"nil sequence", Sequence(nil)},
		{"empty composite", Composite{}},
		{"nil deferred", Deferred{}},
		{"nil value", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := MustStatement(EffectAllow, ActionList("sts:AssumeRole")).SetPrincipal(PrincipalService, tt.value)
			if err := s.Validate(); !errors.Is(err, ErrEmptyPrincipal) {
				t.Errorf("Expected ErrEmptyPrincipal, got %v", err)
			}
		})
	}
}
