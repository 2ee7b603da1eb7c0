package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Definition is the YAML description of a set of IAM resources
type Definition struct {
	Description     string                    `yaml:"description"`
	Parameters      []ParameterDefinition     `yaml:"parameters"`
	Roles           []RoleDefinition          `yaml:"roles"`
	Users           []UserDefinition          `yaml:"users"`
	Groups          []GroupDefinition         `yaml:"groups"`
	Policies        []PolicyDefinition        `yaml:"policies"`
	ManagedPolicies []ManagedPolicyDefinition `yaml:"managed_policies"`
}

type ParameterDefinition struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
	Default     string `yaml:"default"`
}

type RoleDefinition struct {
	Name              string                   `yaml:"name"`
	Path              string                   `yaml:"path"`
	Assume            []StatementDefinition    `yaml:"assume"`
	ManagedPolicyArns []string                 `yaml:"managed_policy_arns"`
	Policies          []InlinePolicyDefinition `yaml:"policies"`
	InstanceProfile   string                   `yaml:"instance_profile"`
	OutputARN         bool                     `yaml:"output_arn"`
}

type UserDefinition struct {
	Name              string                   `yaml:"name"`
	Path              string                   `yaml:"path"`
	Groups            []string                 `yaml:"groups"`
	ManagedPolicyArns []string                 `yaml:"managed_policy_arns"`
	LoginProfile      *LoginProfileDefinition  `yaml:"login_profile"`
	Policies          []InlinePolicyDefinition `yaml:"policies"`
}

type LoginProfileDefinition struct {
	Password      string `yaml:"password"`
	ResetRequired *bool  `yaml:"reset_required"`
}

type GroupDefinition struct {
	Name              string                   `yaml:"name"`
	Path              string                   `yaml:"path"`
	Users             []string                 `yaml:"users"`
	ManagedPolicyArns []string                 `yaml:"managed_policy_arns"`
	Policies          []InlinePolicyDefinition `yaml:"policies"`
}

// InlinePolicyDefinition takes statements, an existing policy JSON document,
// or both. Document statements come first.
type InlinePolicyDefinition struct {
	Name       string                `yaml:"name"`
	ID         string                `yaml:"id"`
	Document   string                `yaml:"document"`
	Statements []StatementDefinition `yaml:"statements"`
}

type PolicyDefinition struct {
	Name       string                `yaml:"name"`
	ID         string                `yaml:"id"`
	Groups     []string              `yaml:"groups"`
	Roles      []string              `yaml:"roles"`
	Users      []string              `yaml:"users"`
	Document   string                `yaml:"document"`
	Statements []StatementDefinition `yaml:"statements"`
}

type ManagedPolicyDefinition struct {
	PolicyDefinition `yaml:",inline"`
	Description      string `yaml:"description"`
}

type StatementDefinition struct {
	Sid        string               `yaml:"sid"`
	Effect     string               `yaml:"effect"`
	Action     StringList           `yaml:"action"`
	Resource   string               `yaml:"resource"`
	Principal  *PrincipalDefinition `yaml:"principal"`
	ExternalID string               `yaml:"external_id"`
	Condition  *ConditionDefinition `yaml:"condition"`
}

// PrincipalDefinition sets exactly one of its fields
type PrincipalDefinition struct {
	Service   StringList          `yaml:"service"`
	Federated StringList          `yaml:"federated"`
	AWS       StringList          `yaml:"aws"`
	Account   *AccountDefinition  `yaml:"account"`
	Accounts  []AccountDefinition `yaml:"accounts"`
}

// AccountDefinition names an account by literal id or by parameter ref
type AccountDefinition struct {
	ID       string `yaml:"id"`
	Ref      string `yaml:"ref"`
	Resource string `yaml:"resource"`
}

type ConditionDefinition struct {
	Operator string         `yaml:"operator"`
	Values   map[string]any `yaml:"values"`
}

// StringList accepts either a scalar or a sequence of strings and
// remembers which form was used.
type StringList struct {
	Values []string
	Scalar bool
}

// UnmarshalYAML implements yaml.Unmarshaler
func (l *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		l.Values = []string{s}
		l.Scalar = true
		return nil
	case yaml.SequenceNode:
		var values []string
		if err := node.Decode(&values); err != nil {
			return err
		}
		l.Values = values
		l.Scalar = false
		return nil
	}
	return fmt.Errorf("line %d: expected a string or a list of strings", node.Line)
}

// IsSet reports whether any value was given
func (l StringList) IsSet() bool {
	return len(l.Values) > 0
}
