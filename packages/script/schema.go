package script

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

var callSchema = gojsonschema.NewGoLoader(map[string]any{
	"type":     "object",
	"required": []string{"method"},
	"properties": map[string]any{
		"method": map[string]any{"type": "string", "enum": Methods},
		"label":  map[string]any{"type": "string"},
		"args":   map[string]any{"type": "array"},
		"value":  map[string]any{"type": "boolean"},
		"options": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"depth":      map[string]any{"type": "integer"},
				"showHidden": map[string]any{"type": "boolean"},
				"compact":    map[string]any{"type": "boolean"},
			},
			"additionalProperties": false,
		},
	},
	"additionalProperties": false,
})

// Schema returns the JSON schema every call must satisfy.
func Schema() ([]byte, error) {
	src, err := callSchema.LoadJSON()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(src, "", "  ")
}

var compiledSchema, compileErr = gojsonschema.NewSchema(callSchema)

func validateCall(raw []byte) []string {
	if compileErr != nil {
		return []string{fmt.Sprintf("invalid call schema: %v", compileErr)}
	}
	result, err := compiledSchema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return []string{fmt.Sprintf("schema validation error: %v", err)}
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		problems = append(problems, e.String())
	}
	return problems
}
