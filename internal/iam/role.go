package iam

import (
	"fmt"

	"rackiam/internal/arn"
)

// DefaultPath is the IAM path used when none is given
const DefaultPath = "/"

func pathOrDefault(path string) string {
	if path == "" {
		return DefaultPath
	}
	return path
}

// Role is an IAM role with its trust policy and inline policies
type Role struct {
	Name                     string
	Path                     string
	AssumeRolePolicyDocument *PolicyDocument
	ManagedPolicyArns        []string
	Policies                 []*InlinePolicy
}

// NewRole returns a role. An empty path means "/".
func NewRole(name, path string) *Role {
	return &Role{
		Name:              name,
		Path:              pathOrDefault(path),
		ManagedPolicyArns: []string{},
		Policies:          []*InlinePolicy{},
	}
}

// AddPolicy appends an inline policy; names are not required to be unique
func (r *Role) AddPolicy(p *InlinePolicy) *Role {
	r.Policies = append(r.Policies, p)
	return r
}

// SetAssumePolicy replaces the trust policy
func (r *Role) SetAssumePolicy(d *PolicyDocument) *Role {
	r.AssumeRolePolicyDocument = d
	return r
}

// SetManagedPolicyArns replaces the managed policy ARNs
func (r *Role) SetManagedPolicyArns(arns []string) *Role {
	r.ManagedPolicyArns = append([]string{}, arns...)
	return r
}

// ARN returns the role ARN, e.g. arn:aws:iam::123456789012:role/Name
func (r *Role) ARN(region, accountID string) string {
	return arn.IAMResource(region, accountID, "role/"+r.Name)
}

// Validate checks the name, the assume role policy and every inline policy
func (r *Role) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("role: %w", ErrEmptyName)
	}
	if r.AssumeRolePolicyDocument != nil {
		if err := r.AssumeRolePolicyDocument.Validate(); err != nil {
			return fmt.Errorf("role %s assume policy: %w", r.Name, err)
		}
	}
	return validatePolicies("role "+r.Name, r.Policies)
}

func validatePolicies(owner string, policies []*InlinePolicy) error {
	for i, p := range policies {
		if p == nil {
			return fmt.Errorf("%s: policy %d is nil", owner, i)
		}
		if err := p.Validate(); err != nil {
			return fmt.Errorf("%s: %w", owner, err)
		}
	}
	return nil
}

// InstanceProfile refers to a role by name
type InstanceProfile struct {
	Name     string
	RoleName string
	Path     string
}

// NewInstanceProfile returns a profile for the named role. An empty path means "/".
func NewInstanceProfile(name, roleName, path string) *InstanceProfile {
	return &InstanceProfile{Name: name, RoleName: roleName, Path: pathOrDefault(path)}
}

// ARN returns the instance profile ARN
func (p *InstanceProfile) ARN(region, accountID string) string {
	return arn.IAMResource(region, accountID, "instance-profile/"+p.Name)
}

// Validate checks that the profile names itself and a role
func (p *InstanceProfile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("instance profile: %w", ErrEmptyName)
	}
	if p.RoleName == "" {
		return fmt.Errorf("instance profile %s role: %w", p.Name, ErrEmptyName)
	}
	return nil
}
