/*
Package iam models IAM access control artifacts in memory.

Statements are grouped into policy documents, documents are carried by
policies, and policies are attached to roles, users and groups. Mutators
change the receiver in place and return it so definitions can be chained:

	role := iam.NewRole("AppRole", "/").
		SetAssumePolicy(iam.NewPolicyDocument().AddStatement(
			iam.MustStatement(iam.EffectAllow, iam.ActionList("sts:AssumeRole")).
				SetServicePrincipal(iam.Sequence{"ec2.amazonaws.com"}),
		))

Membership between entities is by name only; no entity points back to
another, so the model is always a tree.

Entities are not safe for concurrent mutation. Callers sharing an entity
across goroutines must synchronize access themselves.
*/
package iam
