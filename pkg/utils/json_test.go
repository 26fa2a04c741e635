package utils

import (
	"encoding/json"
	"testing"
)

type schemaProbe struct {
	Text string `json:"translated_text" jsonschema_description:"Translation"`
}

func TestGenerateJsonSchema(t *testing.T) {
	b, err := GenerateJsonSchema[schemaProbe]()
	if err != nil {
		t.Fatal(err)
	}

	var doc map[string]any
	if err = json.Unmarshal(b, &doc); err != nil {
		t.Fatalf("schema is not valid JSON: %v", err)
	}

	if _, ok := doc["$schema"]; ok {
		t.Error("schema should not carry a $schema version")
	}

	props, ok := doc["properties"].(map[string]any)
	if !ok {
		t.Fatalf("schema has no properties: %s", b)
	}

	if _, ok = props["translated_text"]; !ok {
		t.Errorf("schema missing translated_text property: %s", b)
	}
}
