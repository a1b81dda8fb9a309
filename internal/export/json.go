package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/caja-extractor/internal/entity"
)

// Report is the JSON export document.
type Report struct {
	RunID       string           `json:"run_id,omitempty"`
	GeneratedAt time.Time        `json:"generated_at"`
	Records     []entity.Record  `json:"records"`
	Totals      entity.Totals    `json:"totals"`
	Failures    []entity.Failure `json:"failures"`
}

// BuildReportJSONSchema returns the JSON-Schema every exported report must satisfy.
func BuildReportJSONSchema() map[string]any {
	amounts := []string{"gross_sales", "total", "cash_amount", "card_amount", "total_expenses", "difference"}

	recordProps := map[string]any{
		"source_name":  map[string]any{"type": "string", "minLength": 1},
		"opening_time": timestampProp(),
		"closing_time": timestampProp(),
	}
	totalsProps := map[string]any{}
	for _, a := range amounts {
		recordProps[a] = amountProp()
		totalsProps[a] = amountProp()
	}

	record := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           recordProps,
		"required":             append([]string{"source_name", "opening_time", "closing_time"}, amounts...),
	}
	failure := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"source_name": map[string]any{"type": "string"},
			"reason":      map[string]any{"type": "string"},
		},
		"required": []string{"source_name", "reason"},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"run_id":       map[string]any{"type": "string"},
			"generated_at": map[string]any{"type": "string", "minLength": 1},
			"records":      map[string]any{"type": "array", "items": record},
			"totals": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties":           totalsProps,
				"required":             amounts,
			},
			"failures": map[string]any{"type": "array", "items": failure},
		},
		"required": []string{"generated_at", "records", "totals", "failures"},
	}
}

func amountProp() map[string]any {
	return map[string]any{"type": "integer", "minimum": 0}
}

// Empty when the marker was not found.
func timestampProp() map[string]any {
	return map[string]any{
		"type":    "string",
		"pattern": `^$|^\d{2}/\d{2}/\d{4}\s+\d{2}:\d{2}:\d{2}\s+[AP]M$`,
	}
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
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

// WriteJSON validates the report against BuildReportJSONSchema and writes it.
func WriteJSON(w io.Writer, rep Report) error {
	if rep.Records == nil {
		rep.Records = []entity.Record{}
	}
	if rep.Failures == nil {
		rep.Failures = []entity.Failure{}
	}
	b, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := ValidateJSONAgainstSchema(BuildReportJSONSchema(), b); err != nil {
		return err
	}
	if _, err := w.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("json write: %w", err)
	}
	return nil
}
