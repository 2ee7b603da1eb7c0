// Package intrinsic provides CloudFormation intrinsic functions that can be
// placed wherever a template value is expected. They render themselves when
// the template is serialized to JSON or YAML.
package intrinsic

import (
	"encoding/json"
	"strings"
)

// Ref refers to a parameter or resource by logical name
type Ref struct {
	Name string
}

func (r Ref) value() map[string]any { return map[string]any{"Ref": r.Name} }

// MarshalJSON implements json.Marshaler
func (r Ref) MarshalJSON() ([]byte, error) { return json.Marshal(r.value()) }

// MarshalYAML implements yaml.Marshaler
func (r Ref) MarshalYAML() (interface{}, error) { return r.value(), nil }

// Join concatenates values with a delimiter
type Join struct {
	Delimiter string
	Values    []any
}

// NewJoin builds a Join over values, which may themselves be intrinsics
func NewJoin(delimiter string, values ...any) Join {
	return Join{Delimiter: delimiter, Values: values}
}

func (j Join) value() map[string]any {
	values := j.Values
	if values == nil {
		values = []any{}
	}
	return map[string]any{"Fn::Join": []any{j.Delimiter, values}}
}

// MarshalJSON implements json.Marshaler
func (j Join) MarshalJSON() ([]byte, error) { return json.Marshal(j.value()) }

// MarshalYAML implements yaml.Marshaler
func (j Join) MarshalYAML() (interface{}, error) { return j.value(), nil }

// GetAtt reads an attribute of a resource, e.g. a role's Arn
type GetAtt struct {
	Resource  string
	Attribute string
}

func (g GetAtt) value() map[string]any {
	return map[string]any{"Fn::GetAtt": []string{g.Resource, g.Attribute}}
}

// MarshalJSON implements json.Marshaler
func (g GetAtt) MarshalJSON() ([]byte, error) { return json.Marshal(g.value()) }

// MarshalYAML implements yaml.Marshaler
func (g GetAtt) MarshalYAML() (interface{}, error) { return g.value(), nil }

// Sub substitutes ${Name} variables in a template string
type Sub struct {
	Template string
}

func (s Sub) value() map[string]any { return map[string]any{"Fn::Sub": s.Template} }

// MarshalJSON implements json.Marshaler
func (s Sub) MarshalJSON() ([]byte, error) { return json.Marshal(s.value()) }

// MarshalYAML implements yaml.Marshaler
func (s Sub) MarshalYAML() (interface{}, error) { return s.value(), nil }

// AccountRootARN joins an account reference into "arn:aws:iam::<account>:root".
func AccountRootARN(account any) Join {
	return NewJoin(":", "arn", "aws", "iam", "", account, "root")
}

// ParseRef reads a "Ref:Name" shorthand, returning false when s is not one
func ParseRef(s string) (Ref, bool) {
	name, ok := strings.CutPrefix(s, "Ref:")
	if !ok || name == "" {
		return Ref{}, false
	}
	return Ref{Name: name}, true
}
