package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		schema  *Schema
		raw     string
		wantErr bool
	}{
		{"no schema accepts text", nil, `plain words`, false},
		{"valid", answerSchema, `{"answer":"yes"}`, false},
		{"missing field", answerSchema, `{}`, true},
		{"wrong type", answerSchema, `{"answer":3}`, true},
		{"extra field", answerSchema, `{"answer":"a","x":1}`, true},
		{"not json", answerSchema, `{"answer":`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(tt.schema, json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var inv *ErrInvalidResponse
				if !errors.As(err, &inv) || string(inv.Content) != tt.raw {
					t.Errorf("err = %T, want ErrInvalidResponse carrying content", err)
				}
			}
		})
	}
}

func TestSchemasWithSameNameDoNotCollide(t *testing.T) {
	a := &Schema{Name: "item", Definition: map[string]any{"type": "string"}}
	b := &Schema{Name: "item", Definition: map[string]any{"type": "integer"}}

	if err := validateResponse(a, json.RawMessage(`"x"`)); err != nil {
		t.Fatalf("a: %v", err)
	}
	if err := validateResponse(b, json.RawMessage(`4`)); err != nil {
		t.Fatalf("b reused a's compiled schema: %v", err)
	}
}
