package intrinsic

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestMarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"ref", Ref{Name: "AccountNumber"}, `{"Ref":"AccountNumber"}`},
		{"getatt", GetAtt{Resource: "MyRole", Attribute: "Arn"}, `{"Fn::GetAtt":["MyRole","Arn"]}`},
		{"sub", Sub{Template: "arn:aws:iam::${AWS::AccountId}:root"}, `{"Fn::Sub":"arn:aws:iam::${AWS::AccountId}:root"}`},
		{"empty join", Join{Delimiter: ","}, `{"Fn::Join":[",",[]]}`},
		{
			"account root",
			AccountRootARN(Ref{Name: "AccountNumber"}),
			`{"Fn::Join":[":",["arn","aws","iam","",{"Ref":"AccountNumber"},"root"]]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.value)
			if err != nil {
				t.Fatalf("Failed to marshal: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestMarshalYAML(t *testing.T) {
	out, err := yaml.Marshal(map[string]any{"Principal": Ref{Name: "AccountNumber"}})
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}
	if !strings.Contains(string(out), "Ref: AccountNumber") {
		t.Errorf("Expected rendered Ref, got:\n%s", out)
	}
}

func TestParseRef(t *testing.T) {
	ref, ok := ParseRef("Ref:AccountNumber")
	if !ok || ref.Name != "AccountNumber" {
		t.Errorf("Expected Ref AccountNumber, got %+v %v", ref, ok)
	}
	if _, ok := ParseRef("123456789012"); ok {
		t.Error("Expected plain string not to parse as Ref")
	}
	if _, ok := ParseRef("Ref:"); ok {
		t.Error("Expected empty Ref name to be rejected")
	}
}
