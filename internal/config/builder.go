package config

import (
	"errors"
	"fmt"
	"time"

	"rackiam/internal/arn"
	"rackiam/internal/iam"
	"rackiam/internal/intrinsic"
	"rackiam/internal/logging"
	"rackiam/internal/policyparser"
	"rackiam/internal/template"
	"rackiam/internal/transform/cfdict"
)

var (
	ErrAmbiguousPrincipal   = errors.New("principal must set exactly one of service, federated, aws, account, accounts")
	ErrInvalidAccount       = errors.New("account must set exactly one of id or ref")
	ErrUnknownParameter     = errors.New("unknown parameter")
	ErrConflictingCondition = errors.New("external_id and condition cannot both be set")
	ErrEmptyOperator        = errors.New("condition operator is required")
)

// Model holds the entities built from a definition
type Model struct {
	Description      string
	Parameters       []ParameterDefinition
	Roles            []*iam.Role
	InstanceProfiles []*iam.InstanceProfile
	Users            []*iam.User
	Groups           []*iam.Group
	Policies         []*iam.Policy
	ManagedPolicies  []*iam.ManagedPolicy

	// roles whose ARN is exported as a template output
	outputRoles []string
}

// ARNEntry is one row of the ARN listing
type ARNEntry struct {
	Kind string
	Name string
	ARN  string
}

type builder struct {
	parameters map[string]bool
}

// Build turns a definition into iam entities
func Build(def *Definition) (*Model, error) {
	start := time.Now()
	logging.LogOperationStart("build_model")

	model, err := build(def)

	items := 0
	if model != nil {
		items = len(model.Roles) + len(model.Users) + len(model.Groups) + len(model.Policies) + len(model.ManagedPolicies)
	}
	logging.LogOperationEnd("build_model", time.Since(start), items, err)
	return model, err
}

func build(def *Definition) (*Model, error) {
	b := &builder{parameters: make(map[string]bool)}
	m := &Model{Description: def.Description, Parameters: def.Parameters}

	for _, p := range def.Parameters {
		if p.Name == "" {
			return nil, fmt.Errorf("parameter: %w", iam.ErrEmptyName)
		}
		b.parameters[p.Name] = true
	}

	for _, rd := range def.Roles {
		role, err := b.role(rd)
		if err != nil {
			return nil, fmt.Errorf("role %s: %w", rd.Name, err)
		}
		m.Roles = append(m.Roles, role)
		if rd.InstanceProfile != "" {
			m.InstanceProfiles = append(m.InstanceProfiles, iam.NewInstanceProfile(rd.InstanceProfile, role.Name, role.Path))
		}
		if rd.OutputARN {
			m.outputRoles = append(m.outputRoles, role.Name)
		}
	}

	for _, ud := range def.Users {
		policies, err := b.inlinePolicies(ud.Policies)
		if err != nil {
			return nil, fmt.Errorf("user %s: %w", ud.Name, err)
		}
		user := iam.NewUser(ud.Name, ud.Groups, ud.Path).SetManagedPolicyArns(checkARNs(ud.Name, ud.ManagedPolicyArns))
		for _, p := range policies {
			user.AddPolicy(p)
		}
		if lp := ud.LoginProfile; lp != nil {
			reset := true
			if lp.ResetRequired != nil {
				reset = *lp.ResetRequired
			}
			user.SetLoginProfile(lp.Password, reset)
		}
		m.Users = append(m.Users, user)
	}

	for _, gd := range def.Groups {
		policies, err := b.inlinePolicies(gd.Policies)
		if err != nil {
			return nil, fmt.Errorf("group %s: %w", gd.Name, err)
		}
		group := iam.NewGroup(gd.Name, gd.Users, gd.Path).SetManagedPolicyArns(checkARNs(gd.Name, gd.ManagedPolicyArns))
		for _, p := range policies {
			group.AddPolicy(p)
		}
		m.Groups = append(m.Groups, group)
	}

	for _, pd := range def.Policies {
		doc, err := b.document(pd.ID, pd.Document, pd.Statements)
		if err != nil {
			return nil, fmt.Errorf("policy %s: %w", pd.Name, err)
		}
		m.Policies = append(m.Policies, iam.NewPolicy(pd.Name).
			SetPolicyDocument(doc).
			AddGroups(pd.Groups...).
			AddRoles(pd.Roles...).
			AddUsers(pd.Users...))
	}

	for _, md := range def.ManagedPolicies {
		doc, err := b.document(md.ID, md.Document, md.Statements)
		if err != nil {
			return nil, fmt.Errorf("managed policy %s: %w", md.Name, err)
		}
		m.ManagedPolicies = append(m.ManagedPolicies, iam.NewManagedPolicy(md.Name, md.Description).
			SetPolicyDocument(doc).
			AddGroups(md.Groups...).
			AddRoles(md.Roles...).
			AddUsers(md.Users...))
	}

	return m, nil
}

func (b *builder) role(rd RoleDefinition) (*iam.Role, error) {
	role := iam.NewRole(rd.Name, rd.Path).SetManagedPolicyArns(checkARNs(rd.Name, rd.ManagedPolicyArns))

	if len(rd.Assume) > 0 {
		doc, err := b.document("", "", rd.Assume)
		if err != nil {
			return nil, fmt.Errorf("assume policy: %w", err)
		}
		role.SetAssumePolicy(doc)
	}

	policies, err := b.inlinePolicies(rd.Policies)
	if err != nil {
		return nil, err
	}
	for _, p := range policies {
		role.AddPolicy(p)
	}
	return role, nil
}

func (b *builder) inlinePolicies(defs []InlinePolicyDefinition) ([]*iam.InlinePolicy, error) {
	policies := make([]*iam.InlinePolicy, 0, len(defs))
	for _, pd := range defs {
		doc, err := b.document(pd.ID, pd.Document, pd.Statements)
		if err != nil {
			return nil, fmt.Errorf("policy %s: %w", pd.Name, err)
		}
		policies = append(policies, iam.NewInlinePolicy(pd.Name).SetPolicyDocument(doc))
	}
	return policies, nil
}

// document returns nil when the definition names no document, statements or id
func (b *builder) document(id, policyJSON string, defs []StatementDefinition) (*iam.PolicyDocument, error) {
	if id == "" && policyJSON == "" && defs == nil {
		return nil, nil
	}
	doc, err := policyparser.ParsePolicyDocument(policyJSON)
	if err != nil {
		return nil, fmt.Errorf("document: %w", err)
	}
	if id != "" {
		doc.SetPolicyID(id)
	}
	for i, sd := range defs {
		s, err := b.statement(sd)
		if err != nil {
			return nil, fmt.Errorf("statement %d: %w", i, err)
		}
		doc.AddStatement(s)
	}
	return doc, nil
}

func (b *builder) statement(sd StatementDefinition) (*iam.Statement, error) {
	effect, err := iam.ParseEffect(sd.Effect)
	if err != nil {
		return nil, err
	}

	var action iam.Action
	switch {
	case !sd.Action.IsSet():
		return nil, iam.ErrEmptyAction
	case sd.Action.Scalar:
		action = iam.ActionName(sd.Action.Values[0])
	default:
		action = iam.ActionList(sd.Action.Values...)
	}

	s, err := iam.NewStatement(effect, action, iam.WithResource(sd.Resource), iam.WithSid(sd.Sid))
	if err != nil {
		return nil, err
	}

	if sd.ExternalID != "" && sd.Condition != nil {
		return nil, ErrConflictingCondition
	}

	if sd.Principal != nil {
		if err := b.principal(s, sd.Principal, sd.ExternalID); err != nil {
			return nil, err
		}
	} else if sd.ExternalID != "" {
		s.SetExternalID(sd.ExternalID)
	}

	if sd.Condition != nil {
		if sd.Condition.Operator == "" {
			return nil, ErrEmptyOperator
		}
		s.SetCondition(sd.Condition.Operator, sd.Condition.Values)
	}
	return s, s.Validate()
}

func (b *builder) principal(s *iam.Statement, pd *PrincipalDefinition, externalID string) error {
	set := 0
	for _, isSet := range []bool{pd.Service.IsSet(), pd.Federated.IsSet(), pd.AWS.IsSet(), pd.Account != nil, len(pd.Accounts) > 0} {
		if isSet {
			set++
		}
	}
	if set != 1 {
		return ErrAmbiguousPrincipal
	}

	switch {
	case pd.Service.IsSet():
		s.SetServicePrincipal(principalValue(pd.Service))
	case pd.Federated.IsSet():
		s.SetFederatedPrincipal(principalValue(pd.Federated))
	case pd.AWS.IsSet():
		s.SetPrincipal(iam.PrincipalAWS, principalValue(pd.AWS))
	case pd.Account != nil:
		account, err := b.account(*pd.Account)
		if err != nil {
			return err
		}
		s.SetAccountPrincipal(account, pd.Account.Resource, externalID)
		return nil
	default:
		entries := make([]iam.AccountResource, 0, len(pd.Accounts))
		for _, ad := range pd.Accounts {
			account, err := b.account(ad)
			if err != nil {
				return err
			}
			entries = append(entries, iam.AccountResource{Account: account, Resource: ad.Resource})
		}
		s.SetMultiAccountPrincipal(entries, externalID)
		return nil
	}

	if externalID != "" {
		s.SetExternalID(externalID)
	}
	return nil
}

// account resolves a literal id directly, and a parameter ref into a Join
// that builds the account ARN when the template is deployed. An id of the
// form "Ref:Name" is read as a ref.
func (b *builder) account(ad AccountDefinition) (iam.Account, error) {
	if (ad.ID == "") == (ad.Ref == "") {
		return iam.Account{}, ErrInvalidAccount
	}
	if ref, ok := intrinsic.ParseRef(ad.ID); ok {
		ad.ID, ad.Ref = "", ref.Name
	}
	if ad.ID != "" {
		return iam.AccountNumber(ad.ID), nil
	}
	if !b.parameters[ad.Ref] {
		return iam.Account{}, fmt.Errorf("%w: %s", ErrUnknownParameter, ad.Ref)
	}
	resource := ad.Resource
	if resource == "" {
		resource = arn.AccountRoot
	}
	return iam.AccountRef(intrinsic.NewJoin(":", "arn", arn.PartitionAWS, arn.ServiceIAM, "", intrinsic.Ref{Name: ad.Ref}, resource)), nil
}

func principalValue(l StringList) iam.PrincipalValue {
	if l.Scalar {
		return iam.Literal(l.Values[0])
	}
	return iam.Sequence(append([]string(nil), l.Values...))
}

// checkARNs warns about managed policy ARNs that are not well formed or
// that name a service other than iam
func checkARNs(owner string, arns []string) []string {
	for _, a := range arns {
		if !arn.IsARN(a) {
			logging.LogWarn("Managed policy ARN is not well formed", map[string]interface{}{
				"resource": owner,
				"arn":      a,
			})
			continue
		}
		parsed, err := arn.Parse(a)
		if err != nil || parsed.Service != arn.ServiceIAM {
			logging.LogWarn("Managed policy ARN is not an IAM ARN", map[string]interface{}{
				"resource": owner,
				"arn":      a,
				"service":  parsed.Service,
			})
		}
	}
	return arns
}

// Template assembles the model into a CloudFormation template
func (m *Model) Template() (*template.Template, error) {
	start := time.Now()
	logging.LogOperationStart("render_template")

	t, err := m.template()

	items := 0
	if t != nil {
		items = t.Len()
	}
	logging.LogOperationEnd("render_template", time.Since(start), items, err)
	return t, err
}

func (m *Model) template() (*template.Template, error) {
	t := template.New(m.Description)

	for _, p := range m.Parameters {
		if err := t.AddParameter(p.Name, template.Parameter{Type: p.Type, Description: p.Description, Default: p.Default}); err != nil {
			return nil, err
		}
	}
	for _, r := range m.Roles {
		if err := t.AddRole(r); err != nil {
			return nil, err
		}
	}
	for _, p := range m.InstanceProfiles {
		if err := t.AddInstanceProfile(p); err != nil {
			return nil, err
		}
	}
	for _, u := range m.Users {
		if err := t.AddUser(u); err != nil {
			return nil, err
		}
	}
	for _, g := range m.Groups {
		if err := t.AddGroup(g, true); err != nil {
			return nil, err
		}
	}
	for _, p := range m.Policies {
		if err := t.AddPolicy(p); err != nil {
			return nil, err
		}
	}
	for _, p := range m.ManagedPolicies {
		if err := t.AddManagedPolicy(p); err != nil {
			return nil, err
		}
	}
	for _, name := range m.outputRoles {
		output := template.Output{
			Description: "ARN of " + name,
			Value:       intrinsic.GetAtt{Resource: name, Attribute: "Arn"},
		}
		if err := t.AddOutput(name+"Arn", output); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Validate checks every entity and that logical IDs are unique, without
// rendering anything
func (m *Model) Validate() error {
	parameters := make(map[string]bool, len(m.Parameters))
	for _, p := range m.Parameters {
		if parameters[p.Name] {
			return fmt.Errorf("parameter %s: %w", p.Name, template.ErrDuplicateResource)
		}
		parameters[p.Name] = true
	}

	ids := make(map[string]bool)
	claim := func(logicalID string, v interface{ Validate() error }) error {
		if v != nil {
			if err := v.Validate(); err != nil {
				return fmt.Errorf("invalid entity: %w", err)
			}
		}
		if ids[logicalID] {
			return fmt.Errorf("resource %s: %w", logicalID, template.ErrDuplicateResource)
		}
		ids[logicalID] = true
		return nil
	}

	for _, r := range m.Roles {
		if err := claim(r.Name, r); err != nil {
			return err
		}
	}
	for _, p := range m.InstanceProfiles {
		if err := claim(p.Name, p); err != nil {
			return err
		}
	}
	for _, u := range m.Users {
		if err := claim(u.UserName, u); err != nil {
			return err
		}
	}
	for _, g := range m.Groups {
		if err := claim(g.GroupName, g); err != nil {
			return err
		}
		if g.Users.Len() > 0 {
			if err := claim(g.GroupName+cfdict.UserAssociationSuffix, nil); err != nil {
				return err
			}
		}
	}
	for _, p := range m.Policies {
		if err := claim(p.Name, p); err != nil {
			return err
		}
	}
	for _, p := range m.ManagedPolicies {
		if err := claim(p.Name, p); err != nil {
			return err
		}
	}
	return nil
}

// ARNs lists the ARN of every addressable entity in the model
func (m *Model) ARNs(region, accountID string) []ARNEntry {
	var entries []ARNEntry
	for _, r := range m.Roles {
		entries = append(entries, ARNEntry{Kind: "role", Name: r.Name, ARN: r.ARN(region, accountID)})
	}
	for _, p := range m.InstanceProfiles {
		entries = append(entries, ARNEntry{Kind: "instance-profile", Name: p.Name, ARN: p.ARN(region, accountID)})
	}
	for _, u := range m.Users {
		entries = append(entries, ARNEntry{Kind: "user", Name: u.UserName, ARN: u.ARN(region, accountID)})
	}
	for _, g := range m.Groups {
		entries = append(entries, ARNEntry{Kind: "group", Name: g.GroupName, ARN: g.ARN(region, accountID)})
	}
	for _, p := range m.ManagedPolicies {
		entries = append(entries, ARNEntry{Kind: "policy", Name: p.Name, ARN: p.ARN(region, accountID)})
	}
	return entries
}
