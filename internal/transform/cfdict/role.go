package cfdict

import (
	"rackiam/internal/domain"
	"rackiam/internal/iam"
)

// Role renders an AWS::IAM::Role resource keyed by the role name
func Role(r *iam.Role) map[string]any {
	props := map[string]any{
		"Path":     r.Path,
		"RoleName": r.Name,
	}
	if r.AssumeRolePolicyDocument != nil {
		props["AssumeRolePolicyDocument"] = PolicyDocument(r.AssumeRolePolicyDocument)
	}
	if len(r.ManagedPolicyArns) > 0 {
		props["ManagedPolicyArns"] = append([]string(nil), r.ManagedPolicyArns...)
	}
	if len(r.Policies) > 0 {
		props["Policies"] = inlinePolicies(r.Policies)
	}
	return resource(r.Name, domain.ResourceTypeRole, props)
}

// InstanceProfile renders an AWS::IAM::InstanceProfile resource for its role
func InstanceProfile(p *iam.InstanceProfile) map[string]any {
	props := map[string]any{
		"Path":                p.Path,
		"InstanceProfileName": p.Name,
		"Roles":               []string{p.RoleName},
	}
	return resource(p.Name, domain.ResourceTypeInstanceProfile, props)
}
