package cfdict

import (
	"rackiam/internal/domain"
	"rackiam/internal/iam"
)

// UserAssociationSuffix is appended to the group name to key its membership resource
const UserAssociationSuffix = "UserAssociation"

// Group renders an AWS::IAM::Group resource keyed by the group name.
// Users is only emitted for groups that carry inline policies; membership
// otherwise goes through GroupUsers.
func Group(g *iam.Group) map[string]any {
	props := map[string]any{
		"Path":      g.Path,
		"GroupName": g.GroupName,
	}
	if len(g.ManagedPolicyArns) > 0 {
		props["ManagedPolicyArns"] = append([]string(nil), g.ManagedPolicyArns...)
	}
	if len(g.Policies) > 0 && g.Users.Len() > 0 {
		props["Users"] = g.Users.Items()
	}
	if len(g.Policies) > 0 {
		props["Policies"] = inlinePolicies(g.Policies)
	}
	return resource(g.GroupName, domain.ResourceTypeGroup, props)
}

// GroupUsers renders the AWS::IAM::UserToGroupAddition resource keyed "{group}UserAssociation"
func GroupUsers(g *iam.Group) map[string]any {
	props := map[string]any{
		"GroupName": g.GroupName,
		"Users":     g.Users.Items(),
	}
	return resource(g.GroupName+UserAssociationSuffix, domain.ResourceTypeUserToGroupAddition, props)
}
