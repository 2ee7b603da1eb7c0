package policyparser

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"rackiam/internal/iam"
)

/*
Policy Parser - Reads existing IAM policy JSON into the iam model

SUPPORTED SHAPES:

1. Action as "s3:*" or ["s3:GetObject", "s3:PutObject"]
   → scalar and list forms are kept as written; ["*"] collapses to "*"

2. Resource as "*" or a single-element list
   → the model carries one resource per statement

3. Principal as {"Service": ...}, {"AWS": ...} or {"Federated": ...}
   → exactly one kind; string or list values

4. Condition with a single operator
   → {"StringEquals": {"sts:ExternalId": "abc"}}

Anything else is rejected with ErrUnsupported rather than silently dropped:
NotAction, NotResource, NotPrincipal, unknown keys, and non-string list items.
*/

var ErrUnsupported = errors.New("unsupported policy element")

var (
	documentKeys  = map[string]bool{"Version": true, "Id": true, "Statement": true}
	statementKeys = map[string]bool{
		"Sid": true, "Effect": true, "Action": true,
		"Resource": true, "Principal": true, "Condition": true,
	}
)

// ParsePolicyDocument parses a policy JSON document
func ParsePolicyDocument(policyJSON string) (*iam.PolicyDocument, error) {
	doc := iam.NewPolicyDocument()
	if policyJSON == "" {
		return doc, nil
	}

	var policyDoc map[string]interface{}
	if err := json.Unmarshal([]byte(policyJSON), &policyDoc); err != nil {
		return nil, fmt.Errorf("failed to parse policy JSON: %w", err)
	}

	return DocumentFromMap(policyDoc)
}

// DocumentFromMap builds a document from an already decoded policy
func DocumentFromMap(policyDoc map[string]interface{}) (*iam.PolicyDocument, error) {
	doc := iam.NewPolicyDocument()

	if err := checkKeys(policyDoc, documentKeys); err != nil {
		return nil, err
	}
	if version, ok := policyDoc["Version"]; ok && version != iam.PolicyVersion {
		return nil, fmt.Errorf("%w: Version %v", ErrUnsupported, version)
	}
	if raw, ok := policyDoc["Id"]; ok {
		id, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%w: Id must be a string", ErrUnsupported)
		}
		doc.SetPolicyID(id)
	}

	var statements []interface{}
	switch v := policyDoc["Statement"].(type) {
	case nil:
		return doc, nil
	case []interface{}:
		statements = v
	case map[string]interface{}:
		statements = []interface{}{v}
	default:
		return nil, fmt.Errorf("%w: Statement must be an object or a list", ErrUnsupported)
	}

	for i, stmtInterface := range statements {
		stmt, ok := stmtInterface.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("statement %d: %w: not an object", i, ErrUnsupported)
		}
		s, err := parseStatement(stmt)
		if err != nil {
			return nil, fmt.Errorf("statement %d: %w", i, err)
		}
		doc.AddStatement(s)
	}
	return doc, nil
}

func parseStatement(stmt map[string]interface{}) (*iam.Statement, error) {
	if err := checkKeys(stmt, statementKeys); err != nil {
		return nil, err
	}

	effectName, _ := stmt["Effect"].(string)
	effect, err := iam.ParseEffect(effectName)
	if err != nil {
		return nil, err
	}

	var action iam.Action
	switch v := stmt["Action"].(type) {
	case string:
		action = iam.ActionName(v)
	case []interface{}:
		names, err := toStringSlice("Action", v)
		if err != nil {
			return nil, err
		}
		action = iam.ActionList(names...)
	default:
		return nil, iam.ErrEmptyAction
	}

	opts := []iam.StatementOption{}
	if raw, ok := stmt["Sid"]; ok {
		sid, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%w: Sid must be a string", ErrUnsupported)
		}
		opts = append(opts, iam.WithSid(sid))
	}
	if raw, ok := stmt["Resource"]; ok {
		resources, err := toStringSlice("Resource", raw)
		if err != nil {
			return nil, err
		}
		if len(resources) != 1 {
			return nil, fmt.Errorf("%w: Resource must name exactly one resource", ErrUnsupported)
		}
		opts = append(opts, iam.WithResource(resources[0]))
	}

	s, err := iam.NewStatement(effect, action, opts...)
	if err != nil {
		return nil, err
	}

	if raw, ok := stmt["Principal"]; ok {
		if err := parsePrincipal(s, raw); err != nil {
			return nil, err
		}
	}
	if raw, ok := stmt["Condition"]; ok {
		if err := parseCondition(s, raw); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func parsePrincipal(s *iam.Statement, raw interface{}) error {
	principal, ok := raw.(map[string]interface{})
	if !ok || len(principal) != 1 {
		return fmt.Errorf("%w: Principal must map exactly one kind", ErrUnsupported)
	}
	for k, v := range principal {
		kind, err := iam.ParsePrincipalKind(k)
		if err != nil {
			return err
		}
		switch value := v.(type) {
		case string:
			s.SetPrincipal(kind, iam.Literal(value))
		case []interface{}:
			values, err := toStringSlice("Principal "+k, value)
			if err != nil {
				return err
			}
			if len(values) == 0 {
				return fmt.Errorf("%w: Principal %s is empty", ErrUnsupported, k)
			}
			s.SetPrincipal(kind, iam.Sequence(values))
		default:
			return fmt.Errorf("%w: Principal %s value", ErrUnsupported, k)
		}
	}
	return nil
}

func parseCondition(s *iam.Statement, raw interface{}) error {
	condition, ok := raw.(map[string]interface{})
	if !ok || len(condition) != 1 {
		return fmt.Errorf("%w: Condition must have exactly one operator", ErrUnsupported)
	}
	operators := make([]string, 0, 1)
	for op := range condition {
		operators = append(operators, op)
	}
	sort.Strings(operators)

	values, ok := condition[operators[0]].(map[string]interface{})
	if !ok {
		return fmt.Errorf("%w: Condition %s must be an object", ErrUnsupported, operators[0])
	}
	s.SetCondition(operators[0], values)
	return nil
}

// checkKeys rejects any key outside allowed
func checkKeys(m map[string]interface{}, allowed map[string]bool) error {
	unknown := make([]string, 0)
	for k := range m {
		if !allowed[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return fmt.Errorf("%w: %v", ErrUnsupported, unknown)
}

// toStringSlice converts a string or a list of strings. Any other item
// type is an error so that nothing is dropped on import.
func toStringSlice(field string, val interface{}) ([]string, error) {
	switch v := val.(type) {
	case string:
		return []string{v}, nil
	case []interface{}:
		result := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s item %d is %T, not a string", ErrUnsupported, field, i, item)
			}
			result = append(result, s)
		}
		return result, nil
	}
	return nil, fmt.Errorf("%w: %s must be a string or a list of strings", ErrUnsupported, field)
}
