package cfdict

import (
	"rackiam/internal/domain"
	"rackiam/internal/iam"
)

// PolicyDocument renders a document. Statement is always a list, possibly empty.
func PolicyDocument(d *iam.PolicyDocument) map[string]any {
	statements := make([]any, 0, d.Len())
	for _, s := range d.Statements() {
		statements = append(statements, Statement(s))
	}
	out := map[string]any{
		"Version":   d.Version(),
		"Statement": statements,
	}
	if id := d.PolicyID(); id != "" {
		out["Id"] = id
	}
	return out
}

// InlinePolicy renders a policy embedded in a role, user or group
func InlinePolicy(p *iam.InlinePolicy) map[string]any {
	out := map[string]any{"PolicyName": p.Name}
	if p.Document != nil {
		out["PolicyDocument"] = PolicyDocument(p.Document)
	}
	return out
}

func inlinePolicies(policies []*iam.InlinePolicy) []any {
	out := make([]any, 0, len(policies))
	for _, p := range policies {
		out = append(out, InlinePolicy(p))
	}
	return out
}

func policyProperties(p *iam.Policy) map[string]any {
	props := map[string]any{}
	if p.Document != nil {
		props["PolicyDocument"] = PolicyDocument(p.Document)
	}
	if p.Groups.Len() > 0 {
		props["Groups"] = p.Groups.Items()
	}
	if p.Users.Len() > 0 {
		props["Users"] = p.Users.Items()
	}
	if p.Roles.Len() > 0 {
		props["Roles"] = p.Roles.Items()
	}
	return props
}

func resource(name string, typ domain.ResourceType, props map[string]any) map[string]any {
	return map[string]any{
		name: map[string]any{
			"Type":       string(typ),
			"Properties": props,
		},
	}
}

// Policy renders an AWS::IAM::Policy resource keyed by the policy name
func Policy(p *iam.Policy) map[string]any {
	props := policyProperties(p)
	props["PolicyName"] = p.Name
	return resource(p.Name, domain.ResourceTypePolicy, props)
}

// ManagedPolicy renders an AWS::IAM::ManagedPolicy resource keyed by the policy name
func ManagedPolicy(p *iam.ManagedPolicy) map[string]any {
	props := policyProperties(&p.Policy)
	props["ManagedPolicyName"] = p.Name
	props["Description"] = p.Description
	return resource(p.Name, domain.ResourceTypeManagedPolicy, props)
}
