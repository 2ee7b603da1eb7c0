// Package template assembles rendered IAM resources into a CloudFormation template.
package template

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"rackiam/internal/domain"
	"rackiam/internal/iam"
	"rackiam/internal/logging"
	"rackiam/internal/transform/cfdict"
)

// FormatVersion is the CloudFormation template format version
const FormatVersion = "2010-09-09"

var (
	ErrDuplicateResource = errors.New("duplicate logical ID")
	ErrUnknownFormat     = errors.New("unknown output format")
)

// Parameter declares a template input
type Parameter struct {
	Type        string `json:"Type" yaml:"Type"`
	Description string `json:"Description,omitempty" yaml:"Description,omitempty"`
	Default     string `json:"Default,omitempty" yaml:"Default,omitempty"`
}

// Output declares a template output
type Output struct {
	Description string `json:"Description,omitempty" yaml:"Description,omitempty"`
	Value       any    `json:"Value" yaml:"Value"`
}

// Template collects resources keyed by logical ID
type Template struct {
	Description string
	parameters  map[string]Parameter
	resources   map[string]any
	outputs     map[string]Output
}

// New returns an empty template
func New(description string) *Template {
	return &Template{
		Description: description,
		parameters:  make(map[string]Parameter),
		resources:   make(map[string]any),
		outputs:     make(map[string]Output),
	}
}

// Len returns the number of resources
func (t *Template) Len() int { return len(t.resources) }

// Resource returns the rendered resource for a logical ID
func (t *Template) Resource(logicalID string) (map[string]any, bool) {
	r, ok := t.resources[logicalID].(map[string]any)
	return r, ok
}

// AddParameter declares a parameter; a repeated name is an error
func (t *Template) AddParameter(name string, p Parameter) error {
	if _, exists := t.parameters[name]; exists {
		return fmt.Errorf("parameter %s: %w", name, ErrDuplicateResource)
	}
	if p.Type == "" {
		p.Type = "String"
	}
	t.parameters[name] = p
	return nil
}

// AddOutput declares an output; a repeated name is an error
func (t *Template) AddOutput(name string, o Output) error {
	if _, exists := t.outputs[name]; exists {
		return fmt.Errorf("output %s: %w", name, ErrDuplicateResource)
	}
	t.outputs[name] = o
	return nil
}

func (t *Template) merge(typ domain.ResourceType, rendered map[string]any) error {
	for logicalID := range rendered {
		if _, exists := t.resources[logicalID]; exists {
			return fmt.Errorf("resource %s: %w", logicalID, ErrDuplicateResource)
		}
	}
	for logicalID, body := range rendered {
		t.resources[logicalID] = body
		logging.LogResource(typ, logicalID)
	}
	return nil
}

type validator interface{ Validate() error }

func validate(v validator) error {
	if err := v.Validate(); err != nil {
		return fmt.Errorf("invalid entity: %w", err)
	}
	return nil
}

// AddRole validates and renders a role
func (t *Template) AddRole(r *iam.Role) error {
	if err := validate(r); err != nil {
		return err
	}
	return t.merge(domain.ResourceTypeRole, cfdict.Role(r))
}

// AddInstanceProfile validates and renders an instance profile
func (t *Template) AddInstanceProfile(p *iam.InstanceProfile) error {
	if err := validate(p); err != nil {
		return err
	}
	return t.merge(domain.ResourceTypeInstanceProfile, cfdict.InstanceProfile(p))
}

// AddUser validates and renders a user
func (t *Template) AddUser(u *iam.User) error {
	if err := validate(u); err != nil {
		return err
	}
	return t.merge(domain.ResourceTypeUser, cfdict.User(u))
}

// AddGroup validates and renders a group. With withMembers set and at least
// one member, the {group}UserAssociation resource is added as well.
func (t *Template) AddGroup(g *iam.Group, withMembers bool) error {
	if err := validate(g); err != nil {
		return err
	}
	if err := t.merge(domain.ResourceTypeGroup, cfdict.Group(g)); err != nil {
		return err
	}
	if withMembers && g.Users.Len() > 0 {
		return t.merge(domain.ResourceTypeUserToGroupAddition, cfdict.GroupUsers(g))
	}
	return nil
}

// AddPolicy validates and renders a standalone policy
func (t *Template) AddPolicy(p *iam.Policy) error {
	if err := validate(p); err != nil {
		return err
	}
	return t.merge(domain.ResourceTypePolicy, cfdict.Policy(p))
}

// AddManagedPolicy validates and renders a managed policy
func (t *Template) AddManagedPolicy(p *iam.ManagedPolicy) error {
	if err := validate(p); err != nil {
		return err
	}
	return t.merge(domain.ResourceTypeManagedPolicy, cfdict.ManagedPolicy(p))
}

// Mapping returns the template as a nested mapping
func (t *Template) Mapping() map[string]any {
	out := map[string]any{
		"AWSTemplateFormatVersion": FormatVersion,
		"Resources":                t.resources,
	}
	if t.Description != "" {
		out["Description"] = t.Description
	}
	if len(t.parameters) > 0 {
		out["Parameters"] = t.parameters
	}
	if len(t.outputs) > 0 {
		out["Outputs"] = t.outputs
	}
	return out
}

// JSON renders the template as indented JSON
func (t *Template) JSON() ([]byte, error) {
	out, err := json.MarshalIndent(t.Mapping(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal template JSON: %w", err)
	}
	return append(out, '\n'), nil
}

// YAML renders the template as YAML
func (t *Template) YAML() ([]byte, error) {
	out, err := yaml.Marshal(t.Mapping())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal template YAML: %w", err)
	}
	return out, nil
}

// Render serializes the template in the requested format
func (t *Template) Render(format domain.OutputFormat) ([]byte, error) {
	switch format {
	case domain.OutputFormatJSON, "":
		return t.JSON()
	case domain.OutputFormatYAML:
		return t.YAML()
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
