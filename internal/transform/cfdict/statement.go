package cfdict

import "rackiam/internal/iam"

// Statement renders one statement. Effect and Action are always present.
func Statement(s *iam.Statement) map[string]any {
	out := map[string]any{
		"Effect": string(s.Effect()),
		"Action": s.Action().Value(),
	}
	if sid := s.Sid(); sid != "" {
		out["Sid"] = sid
	}
	if resource := s.Resource(); resource != "" {
		out["Resource"] = resource
	}
	if kind, value, ok := s.Principal(); ok && !iam.IsEmptyPrincipal(value) {
		out["Principal"] = map[string]any{string(kind): value.Resolve()}
	}
	if operator, values, ok := s.Condition(); ok {
		copied := make(map[string]any, len(values))
		for k, v := range values {
			copied[k] = v
		}
		out["Condition"] = map[string]any{operator: copied}
	}
	return out
}
