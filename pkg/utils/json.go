package utils

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
)

func reflectSchema[T any]() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}

// GenerateSchema uses jsonschema library to make a JSON schema value suitable
// for embedding in provider request parameters.
func GenerateSchema[T any]() any {
	return reflectSchema[T]()
}

// GenerateJsonSchema makes a JSON schema document for T, stripped of the
// fields model providers reject.
func GenerateJsonSchema[T any]() ([]byte, error) {
	schema := reflectSchema[T]()
	schema.ID = ""
	schema.Version = ""
	sc, err := json.Marshal(schema)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal JSON schema")
	}
	return sc, nil
}
