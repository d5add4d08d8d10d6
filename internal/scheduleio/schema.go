package scheduleio

// BuildScheduleJSONSchema returns the JSON-Schema (draft 2020-12 subset)
// every persisted or imported fee schedule document must satisfy. Shape
// checks live here; the chain invariant is re-checked by the model after
// decoding.
func BuildScheduleJSONSchema() map[string]any {
	feeRow := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"min_minutes":  map[string]any{"type": "integer", "minimum": 0},
			"max_minutes":  map[string]any{"type": []string{"integer", "null"}, "minimum": 1},
			"unit_minutes": map[string]any{"type": "integer", "minimum": 1},
			"fee":          map[string]any{"type": "integer", "minimum": 0},
			"is_fixed_fee": map[string]any{"type": "boolean"},
		},
		"required": []string{"min_minutes", "unit_minutes", "fee"},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"basic_fee": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"duration_minutes": map[string]any{"type": "integer", "minimum": 1},
					"fee":              map[string]any{"type": "integer", "minimum": 0},
				},
				"required": []string{"duration_minutes", "fee"},
			},
			"additional_fee": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"interval_minutes": map[string]any{"type": "integer", "minimum": 1},
					"fee":              map[string]any{"type": "integer", "minimum": 0},
				},
				"required": []string{"interval_minutes", "fee"},
			},
			"daily_max_fee": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"max_fee": map[string]any{"type": "integer", "minimum": 0},
				},
				"required": []string{"max_fee"},
			},
			"custom_fee_rules": map[string]any{
				"type":  "array",
				"items": feeRow,
			},
		},
		"required": []string{"basic_fee", "additional_fee"},
	}
}
