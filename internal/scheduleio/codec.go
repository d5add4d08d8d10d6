// Package scheduleio encodes fee schedules to and from their persisted
// JSON form, validating shape against a JSON schema before the model's
// structural validation runs. Nothing invalid reaches storage.
package scheduleio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/jaeyoung-oh/parkrate/internal/entity"
)

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		b, err := json.Marshal(BuildScheduleJSONSchema())
		if err != nil {
			schemaErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("schedule.json", bytes.NewReader(b)); err != nil {
			schemaErr = fmt.Errorf("add schema: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile("schedule.json")
	})
	return schema, schemaErr
}

// DecodeSchedule validates the document against the schema, unmarshals
// it, and runs the model validation. The returned schedule is safe to
// bill against.
func DecodeSchedule(data []byte) (*entity.FeeStructure, error) {
	sch, err := compiledSchema()
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidSchedule, err)
	}
	if err := sch.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidSchedule, err)
	}
	var s entity.FeeStructure
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidSchedule, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// EncodeSchedule renders the persisted JSON form.
func EncodeSchedule(s *entity.FeeStructure) ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(s)
}

// EncodeRows serializes just the custom chain, the form the schedule
// column stores.
func EncodeRows(rows []entity.FeeRow) ([]byte, error) {
	if len(rows) > 0 {
		if err := entity.ValidateChain(rows); err != nil {
			return nil, err
		}
	}
	return json.Marshal(rows)
}

// DecodeRows parses a stored custom chain. An empty or null column is an
// empty chain.
func DecodeRows(data []byte) ([]entity.FeeRow, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var rows []entity.FeeRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidSchedule, err)
	}
	if len(rows) > 0 {
		if err := entity.ValidateChain(rows); err != nil {
			return nil, err
		}
	}
	return rows, nil
}
