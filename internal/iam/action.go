package iam

// Wildcard matches every action or resource
const Wildcard = "*"

// Action is either a single action name or an ordered list of names.
// A list holding only the wildcard collapses to the scalar wildcard.
type Action struct {
	name  string
	names []string
}

// AllActions is the scalar wildcard action
var AllActions = ActionName(Wildcard)

// ActionName returns a scalar action such as "s3:*"
func ActionName(name string) Action {
	return Action{name: name}
}

// ActionList returns an ordered list of actions
func ActionList(names ...string) Action {
	if len(names) == 1 && names[0] == Wildcard {
		return AllActions
	}
	return Action{names: append([]string(nil), names...)}
}

// IsList reports whether the action renders as a list
func (a Action) IsList() bool {
	return a.names != nil
}

// IsWildcard reports whether the action is the scalar wildcard
func (a Action) IsWildcard() bool {
	return a.names == nil && a.name == Wildcard
}

// Names returns the action names in order
func (a Action) Names() []string {
	if a.names != nil {
		return append([]string(nil), a.names...)
	}
	if a.name == "" {
		return nil
	}
	return []string{a.name}
}

// IsEmpty reports whether no action is named
func (a Action) IsEmpty() bool {
	return len(a.names) == 0 && a.name == ""
}

// Value returns the action as a string or a fresh []string
func (a Action) Value() any {
	if a.names != nil {
		return append([]string(nil), a.names...)
	}
	return a.name
}
