package entity

import (
	"strings"
	"testing"
)

func TestCardSchemaAcceptsFullCard(t *testing.T) {
	schema, err := CompileCardSchema()
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	doc := map[string]any{
		"company_name":  "Acme Corp",
		"card_holder":   "Jane Doe",
		"designation":   "CEO",
		"mobile_number": "555-1234 & 555-5678",
		"email":         "jane@acme.com",
		"website":       "www.acme.com",
		"area":          "12 Elm St",
		"city":          "Springfield",
		"state":         "Illinois",
		"pin_code":      "123456",
	}
	if err := schema.Validate(doc); err != nil {
		t.Errorf("valid card rejected: %v", err)
	}
}

func TestCardSchemaRequiresHolder(t *testing.T) {
	schema, err := CompileCardSchema()
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	if err := schema.Validate(map[string]any{"company_name": "Acme Corp"}); err == nil {
		t.Error("card without card_holder accepted")
	}
	if err := schema.Validate(map[string]any{"card_holder": ""}); err == nil {
		t.Error("empty card_holder accepted")
	}
}

func TestCardSchemaEnforcesColumnWidths(t *testing.T) {
	schema, err := CompileCardSchema()
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	doc := map[string]any{
		"card_holder": "Jane Doe",
		"pin_code":    strings.Repeat("9", 11),
	}
	if err := schema.Validate(doc); err == nil {
		t.Error("over-long pin_code accepted")
	}
}

func TestCardSchemaRejectsUnknownFields(t *testing.T) {
	schema, err := CompileCardSchema()
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	doc := map[string]any{
		"card_holder": "Jane Doe",
		"fax_number":  "555",
	}
	if err := schema.Validate(doc); err == nil {
		t.Error("unknown field accepted")
	}
}
