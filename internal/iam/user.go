package iam

import (
	"fmt"

	"rackiam/internal/arn"
)

// LoginProfile is a console password and whether it must be reset on first login
type LoginProfile struct {
	Password              string
	PasswordResetRequired bool
}

// User is an IAM user
type User struct {
	UserName          string
	Groups            StringSet
	Path              string
	ManagedPolicyArns []string
	LoginProfile      *LoginProfile
	Policies          []*InlinePolicy
}

// NewUser returns a user in the given groups. An empty path means "/".
func NewUser(name string, groups []string, path string) *User {
	return &User{
		UserName:          name,
		Groups:            NewStringSet(groups...),
		Path:              pathOrDefault(path),
		ManagedPolicyArns: []string{},
		Policies:          []*InlinePolicy{},
	}
}

// SetManagedPolicyArns replaces the managed policy ARNs
func (u *User) SetManagedPolicyArns(arns []string) *User {
	u.ManagedPolicyArns = append([]string{}, arns...)
	return u
}

// SetLoginProfile replaces the login profile
func (u *User) SetLoginProfile(password string, passwordReset bool) *User {
	u.LoginProfile = &LoginProfile{Password: password, PasswordResetRequired: passwordReset}
	return u
}

// AddToGroup adds the user to a group by name
func (u *User) AddToGroup(group string) *User {
	u.Groups.Add(group)
	return u
}

// AddPolicy appends an inline policy
func (u *User) AddPolicy(p *InlinePolicy) *User {
	u.Policies = append(u.Policies, p)
	return u
}

// ARN returns the user ARN, e.g. arn:aws:iam::123456789012:user/Dave
func (u *User) ARN(region, accountID string) string {
	return arn.IAMResource(region, accountID, "user/"+u.UserName)
}

// Validate checks the name and every inline policy
func (u *User) Validate() error {
	if u.UserName == "" {
		return fmt.Errorf("user: %w", ErrEmptyName)
	}
	return validatePolicies("user "+u.UserName, u.Policies)
}
