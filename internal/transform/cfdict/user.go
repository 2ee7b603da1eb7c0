package cfdict

import (
	"rackiam/internal/domain"
	"rackiam/internal/iam"
)

// User renders an AWS::IAM::User resource keyed by the user name
func User(u *iam.User) map[string]any {
	props := map[string]any{
		"Path":     u.Path,
		"UserName": u.UserName,
	}
	if len(u.ManagedPolicyArns) > 0 {
		props["ManagedPolicyArns"] = append([]string(nil), u.ManagedPolicyArns...)
	}
	if u.Groups.Len() > 0 {
		props["Groups"] = u.Groups.Items()
	}
	if len(u.Policies) > 0 {
		props["Policies"] = inlinePolicies(u.Policies)
	}
	if u.LoginProfile != nil {
		props["LoginProfile"] = map[string]any{
			"Password":              u.LoginProfile.Password,
			"PasswordResetRequired": u.LoginProfile.PasswordResetRequired,
		}
	}
	return resource(u.UserName, domain.ResourceTypeUser, props)
}
