package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRender_DefaultDefinition(t *testing.T) {
	out, err := execute(t, "render", "--format", "json")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("render output is not JSON: %v\n%s", err, out)
	}
	resources := decoded["Resources"].(map[string]any)
	if _, ok := resources["RootRole"]; !ok {
		t.Errorf("Expected RootRole in resources")
	}
}

func TestRender_UnknownFormat(t *testing.T) {
	if _, err := execute(t, "render", "--format", "toml"); err == nil {
		t.Error("Expected unknown format to fail")
	}
}

func TestValidate_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.yaml")
	src := "roles:\n  - name: R\n    assume:\n      - effect: Allow\n        action: [sts:AssumeRole]\n        principal:\n          service: ec2.amazonaws.com\n"
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatalf("Failed to write definition: %v", err)
	}

	out, err := execute(t, "validate", "-f", path)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !strings.Contains(out, "Definition is valid") {
		t.Errorf("Unexpected output %q", out)
	}
}

func TestValidate_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.yaml")
	src := "roles:\n  - name: R\n    assume:\n      - effect: Permit\n        action: [sts:AssumeRole]\n"
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatalf("Failed to write definition: %v", err)
	}

	if _, err := execute(t, "validate", "-f", path); err == nil {
		t.Error("Expected invalid effect to fail")
	}
}

func TestARNs(t *testing.T) {
	out, err := execute(t, "arns", "--account-id", "123456789012")
	if err != nil {
		t.Fatalf("arns failed: %v", err)
	}
	if !strings.Contains(out, "arn:aws:iam::123456789012:role/RootRole") {
		t.Errorf("Expected RootRole ARN in output:\n%s", out)
	}
	if !strings.Contains(out, "arn:aws:iam::123456789012:policy/EsAccess") {
		t.Errorf("Expected EsAccess ARN in output:\n%s", out)
	}
}
