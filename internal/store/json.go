package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/tarikhaida/menu-tracker/internal/entity"
)

// buildMenuJSONSchema returns the JSON-Schema (draft 2020-12 subset) the
// JSON mirror must satisfy before it is accepted as a recovery source.
func buildMenuJSONSchema() map[string]any {
	return map[string]any{
		"type": "array",
		"items": map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"properties": map[string]any{
				"filename":       map[string]any{"type": "string", "minLength": 1},
				"date":           map[string]any{"type": "string", "pattern": `^\d{4}-\d{2}-\d{2}$`},
				"day_of_week":    map[string]any{"type": "string", "enum": []string{"Lundi", "Mardi", "Mercredi", "Jeudi", "Vendredi"}},
				"day_number":     map[string]any{"type": "integer", "minimum": 1, "maximum": 31},
				"entree":         map[string]any{"type": "string", "minLength": 1},
				"plats":          map[string]any{"type": "string", "minLength": 1},
				"accompagnement": map[string]any{"type": "string", "minLength": 1},
				"dessert":        map[string]any{"type": "string", "minLength": 1},
			},
			"required": []string{"filename", "date", "day_of_week", "day_number", "entree", "plats", "accompagnement", "dessert"},
		},
	}
}

// validateAgainstSchema validates data against the schema map.
func validateAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}

func (s *Store) saveJSON(path string, records []entity.MenuRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadJSON reads the JSON mirror, validating it against the record schema
// before accepting any of it.
func (s *Store) LoadJSON(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := validateAgainstSchema(buildMenuJSONSchema(), data); err != nil {
		return fmt.Errorf("validate %s: %w", path, err)
	}

	var records []entity.MenuRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	byDate := make(map[string]entity.MenuRecord, len(records))
	for _, rec := range records {
		byDate[rec.DateISO()] = rec
	}
	s.records = byDate
	return nil
}
