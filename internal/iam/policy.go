package iam

import (
	"fmt"

	"rackiam/internal/arn"
)

// PolicyVersion is the policy language version every document declares
const PolicyVersion = "2012-10-17"

// PolicyDocument is an ordered list of statements
type PolicyDocument struct {
	statements []*Statement
	policyID   string
}

// NewPolicyDocument returns an empty document
func NewPolicyDocument() *PolicyDocument {
	return &PolicyDocument{statements: []*Statement{}}
}

// Version returns the fixed policy language version
func (d *PolicyDocument) Version() string { return PolicyVersion }

// PolicyID returns the document Id, empty when unset
func (d *PolicyDocument) PolicyID() string { return d.policyID }

// Statements returns the statements in insertion order
func (d *PolicyDocument) Statements() []*Statement {
	return append([]*Statement(nil), d.statements...)
}

// Len returns the number of statements
func (d *PolicyDocument) Len() int { return len(d.statements) }

// SetPolicyID replaces the document Id
func (d *PolicyDocument) SetPolicyID(id string) *PolicyDocument {
	d.policyID = id
	return d
}

// AddStatement appends a statement
func (d *PolicyDocument) AddStatement(s *Statement) *PolicyDocument {
	d.statements = append(d.statements, s)
	return d
}

// AddStatements appends statements in argument order
func (d *PolicyDocument) AddStatements(statements ...*Statement) *PolicyDocument {
	d.statements = append(d.statements, statements...)
	return d
}

// Validate checks every statement
func (d *PolicyDocument) Validate() error {
	for i, s := range d.statements {
		if s == nil {
			return fmt.Errorf("statement %d is nil", i)
		}
		if err := s.Validate(); err != nil {
			if s.sid != "" {
				return fmt.Errorf("statement %d (%s): %w", i, s.sid, err)
			}
			return fmt.Errorf("statement %d: %w", i, err)
		}
	}
	return nil
}

func validateDocument(name string, d *PolicyDocument) error {
	if name == "" {
		return ErrEmptyName
	}
	if d == nil {
		return nil
	}
	if err := d.Validate(); err != nil {
		return fmt.Errorf("policy %s: %w", name, err)
	}
	return nil
}

// InlinePolicy is a named document embedded in one owning principal
type InlinePolicy struct {
	Name     string
	Document *PolicyDocument
}

// NewInlinePolicy returns a policy without a document
func NewInlinePolicy(name string) *InlinePolicy {
	return &InlinePolicy{Name: name}
}

// SetPolicyDocument replaces the document
func (p *InlinePolicy) SetPolicyDocument(d *PolicyDocument) *InlinePolicy {
	p.Document = d
	return p
}

// Validate checks the name and the document, if any
func (p *InlinePolicy) Validate() error {
	return validateDocument(p.Name, p.Document)
}

// Policy is a standalone policy attached to users, groups and roles by name
type Policy struct {
	Name     string
	Document *PolicyDocument
	Groups   StringSet
	Roles    StringSet
	Users    StringSet
}

// NewPolicy returns a policy with no document and no attachments
func NewPolicy(name string) *Policy {
	return &Policy{
		Name:   name,
		Groups: NewStringSet(),
		Roles:  NewStringSet(),
		Users:  NewStringSet(),
	}
}

// SetPolicyDocument replaces the document
func (p *Policy) SetPolicyDocument(d *PolicyDocument) *Policy {
	p.Document = d
	return p
}

// AddGroups attaches the policy to groups by name
func (p *Policy) AddGroups(names ...string) *Policy {
	p.Groups.Add(names...)
	return p
}

// AddRoles attaches the policy to roles by name
func (p *Policy) AddRoles(names ...string) *Policy {
	p.Roles.Add(names...)
	return p
}

// AddUsers attaches the policy to users by name
func (p *Policy) AddUsers(names ...string) *Policy {
	p.Users.Add(names...)
	return p
}

// Validate checks the name and the document, if any
func (p *Policy) Validate() error {
	return validateDocument(p.Name, p.Document)
}

// ManagedPolicy is an attachable policy with a description and its own ARN
type ManagedPolicy struct {
	Policy
	Description string
}

// NewManagedPolicy returns a managed policy with no document and no attachments
func NewManagedPolicy(name, description string) *ManagedPolicy {
	return &ManagedPolicy{Policy: *NewPolicy(name), Description: description}
}

// SetPolicyDocument replaces the document
func (p *ManagedPolicy) SetPolicyDocument(d *PolicyDocument) *ManagedPolicy {
	p.Document = d
	return p
}

// AddGroups attaches the policy to groups by name
func (p *ManagedPolicy) AddGroups(names ...string) *ManagedPolicy {
	p.Groups.Add(names...)
	return p
}

// AddRoles attaches the policy to roles by name
func (p *ManagedPolicy) AddRoles(names ...string) *ManagedPolicy {
	p.Roles.Add(names...)
	return p
}

// AddUsers attaches the policy to users by name
func (p *ManagedPolicy) AddUsers(names ...string) *ManagedPolicy {
	p.Users.Add(names...)
	return p
}

// ARN returns the policy ARN, e.g. arn:aws:iam:::policy/Name
func (p *ManagedPolicy) ARN(region, accountID string) string {
	return arn.IAMResource(region, accountID, "policy/"+p.Name)
}

// Validate checks the policy and requires a description
func (p *ManagedPolicy) Validate() error {
	if err := p.Policy.Validate(); err != nil {
		return err
	}
	if p.Description == "" {
		return fmt.Errorf("managed policy %s: %w", p.Name, ErrEmptyDescription)
	}
	return nil
}
