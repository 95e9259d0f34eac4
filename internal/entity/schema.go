package entity

import (
	"encoding/json"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildCardJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a generic map.
// It mirrors the stored column widths so an over-long edit is rejected before it
// ever reaches the database.
func BuildCardJSONSchema() map[string]any {
	props := map[string]any{
		"company_name":  varcharProp(225),
		"card_holder":   map[string]any{"type": "string", "minLength": 1, "maxLength": 225},
		"designation":   varcharProp(225),
		"mobile_number": varcharProp(50),
		"email":         map[string]any{"type": "string"},
		"website":       map[string]any{"type": "string"},
		"area":          varcharProp(225),
		"city":          varcharProp(225),
		"state":         varcharProp(225),
		"pin_code":      varcharProp(10),
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             []string{"card_holder"},
	}
}

func varcharProp(maxLen int) map[string]any {
	return map[string]any{"type": "string", "maxLength": maxLen}
}

// CompileCardSchema compiles the card schema for request validation.
func CompileCardSchema() (*jsonschema.Schema, error) {
	raw, err := json.Marshal(BuildCardJSONSchema())
	if err != nil {
		return nil, err
	}
	return jsonschema.CompileString("card.schema.json", string(raw))
}
