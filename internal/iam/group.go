package iam

import (
	"fmt"

	"rackiam/internal/arn"
)

// Group is an IAM group; members are referenced by user name
type Group struct {
	GroupName         string
	Users             StringSet
	Path              string
	ManagedPolicyArns []string
	Policies          []*InlinePolicy
}

// NewGroup returns a group with the given members. An empty path means "/".
func NewGroup(name string, users []string, path string) *Group {
	return &Group{
		GroupName:         name,
		Users:             NewStringSet(users...),
		Path:              pathOrDefault(path),
		ManagedPolicyArns: []string{},
		Policies:          []*InlinePolicy{},
	}
}

// SetManagedPolicyArns replaces the managed policy ARNs
func (g *Group) SetManagedPolicyArns(arns []string) *Group {
	g.ManagedPolicyArns = append([]string{}, arns...)
	return g
}

// AddPolicy appends an inline policy
func (g *Group) AddPolicy(p *InlinePolicy) *Group {
	g.Policies = append(g.Policies, p)
	return g
}

// AddUsers adds members by name
func (g *Group) AddUsers(users ...string) *Group {
	g.Users.Add(users...)
	return g
}

// ARN returns the group ARN, e.g. arn:aws:iam::123456789012:group/Name
func (g *Group) ARN(region, accountID string) string {
	return arn.IAMResource(region, accountID, "group/"+g.GroupName)
}

// Validate checks the name and every inline policy
func (g *Group) Validate() error {
	if g.GroupName == "" {
		return fmt.Errorf("group: %w", ErrEmptyName)
	}
	return validatePolicies("group "+g.GroupName, g.Policies)
}
