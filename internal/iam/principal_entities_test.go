package iam

import (
	"errors"
	"reflect"
	"testing"
)

func TestARNs(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"user", NewUser("TestUser", nil, "").ARN("", ""), "arn:aws:iam:::user/TestUser"},
		{"user in account", NewUser("Dave", nil, "").ARN("", "123456789012"), "arn:aws:iam::123456789012:user/Dave"},
		{"group", NewGroup("TestGroup", nil, "").ARN("", ""), "arn:aws:iam:::group/TestGroup"},
		{"managed policy", NewManagedPolicy("TestManagedPolicy", "My Managed Policy").ARN("", ""), "arn:aws:iam:::policy/TestManagedPolicy"},
		{"role", NewRole("TestRole", "").ARN("", ""), "arn:aws:iam:::role/TestRole"},
		{"instance profile", NewInstanceProfile("TestInstanceProfile", "MyRole", "").ARN("", ""), "arn:aws:iam:::instance-profile/TestInstanceProfile"},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.want, tt.got)
		}
	}
}

func TestUser_DuplicateGroups(t *testing.T) {
	u := NewUser("TestUser", []string{"group1", "group2"}, "")
	u.AddToGroup("group2")

	if u.Groups.Len() != 2 {
		t.Errorf("Expected 2 groups, got %d", u.Groups.Len())
	}
	if !reflect.DeepEqual(u.Groups.Items(), []string{"group1", "group2"}) {
		t.Errorf("Unexpected groups %v", u.Groups.Items())
	}
}

func TestUser_FreshCollections(t *testing.T) {
	groups := []string{"g1"}
	a := NewUser("A", groups, "")
	b := NewUser("B", groups, "")
	a.AddToGroup("g2")
	a.SetManagedPolicyArns([]string{"arn1"})

	if b.Groups.Len() != 1 || len(b.ManagedPolicyArns) != 0 {
		t.Error("Expected users not to share collections")
	}
	if len(groups) != 1 {
		t.Error("Expected caller slice to be untouched")
	}
}

func TestUser_LoginProfileReplaces(t *testing.T) {
	u := NewUser("TestUser", nil, "").
		SetLoginProfile("first", false).
		SetLoginProfile("mypass", true)

	if u.LoginProfile == nil || u.LoginProfile.Password != "mypass" || !u.LoginProfile.PasswordResetRequired {
		t.Errorf("Unexpected login profile %+v", u.LoginProfile)
	}
}

func TestGroup_DuplicateUsers(t *testing.T) {
	g := NewGroup("TestGroup", []string{"user1", "user2"}, "")
	g.AddUsers("user2")

	if g.Users.Len() != 2 {
		t.Errorf("Expected 2 users, got %d", g.Users.Len())
	}
}

func TestGroup_SetManagedPolicyArnsReplaces(t *testing.T) {
	g := NewGroup("TestGroup", nil, "").
		SetManagedPolicyArns([]string{"arn1", "arn2"}).
		SetManagedPolicyArns([]string{"arn3"})

	if !reflect.DeepEqual(g.ManagedPolicyArns, []string{"arn3"}) {
		t.Errorf("Expected [arn3], got %v", g.ManagedPolicyArns)
	}
}

func TestRole_AddPolicyAppends(t *testing.T) {
	p := NewInlinePolicy("MyPolicy").SetPolicyDocument(
		NewPolicyDocument().AddStatement(MustStatement(EffectAllow, ActionName("s3:*"), WithResource("*"))),
	)
	r := NewRole("TestRole", "").AddPolicy(p).AddPolicy(p)

	if len(r.Policies) != 2 {
		t.Errorf("Expected 2 policies, got %d", len(r.Policies))
	}
	if r.Path != "/" {
		t.Errorf("Expected default path /, got %q", r.Path)
	}
}

func TestRole_Chaining(t *testing.T) {
	r := NewRole("TestRole", "/service/").
		SetAssumePolicy(NewPolicyDocument().AddStatement(
			MustStatement(EffectAllow, ActionName("sts:AssumeRole")).
				SetServicePrincipal(Sequence{"lambda.amazonaws.com"}),
		)).
		AddPolicy(NewInlinePolicy("AllS3").SetPolicyDocument(
			NewPolicyDocument().AddStatement(MustStatement(EffectAllow, ActionName("s3:*"), WithResource("*"))),
		))

	if r.AssumeRolePolicyDocument == nil || r.AssumeRolePolicyDocument.Len() != 1 {
		t.Fatal("Expected assume policy with one statement")
	}
	if r.Path != "/service/" {
		t.Errorf("Expected path /service/, got %q", r.Path)
	}
	if err := r.Validate(); err != nil {
		t.Errorf("Expected valid role, got %v", err)
	}
}

func TestRole_ValidateAssumePolicy(t *testing.T) {
	r := NewRole("TestRole", "").SetAssumePolicy(NewPolicyDocument().AddStatement(
		MustStatement(EffectAllow, ActionName("sts:AssumeRole")).SetPrincipal("Robots", Literal("x")),
	))

	if err := r.Validate(); !errors.Is(err, ErrInvalidPrincipalKind) {
		t.Errorf("Expected ErrInvalidPrincipalKind, got %v", err)
	}
}

func TestInstanceProfile_Validate(t *testing.T) {
	if err := NewInstanceProfile("Profile", "", "").Validate(); !errors.Is(err, ErrEmptyName) {
		t.Errorf("Expected ErrEmptyName, got %v", err)
	}
	if err := NewInstanceProfile("Profile", "Role", "").Validate(); err != nil {
		t.Errorf("Expected valid profile, got %v", err)
	}
}
