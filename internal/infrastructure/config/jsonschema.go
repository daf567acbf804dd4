package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/invopop/jsonschema"

	"github.com/bnema/feedwall/internal/domain/build"
)

// GenerateSchema returns the JSON schema of the configuration file.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		FieldNameTag:               "toml",
		AllowAdditionalProperties:  false,
		RequiredFromJSONSchemaTags: true,
	}
	schema := r.Reflect(&Config{})

	schema.ID = jsonschema.ID(build.RepoURL() + "/config.schema.json")
	schema.Title = "feedwall configuration"
	schema.Description = "Configuration schema for feedwall, a multi-panel social feed viewer"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return append(data, '\n'), nil
}

// GenerateSchemaFile writes the schema next to the config file. It is called
// when the default config is created.
func GenerateSchemaFile() error {
	schemaFile, err := GetSchemaFile()
	if err != nil {
		return fmt.Errorf("failed to get schema path: %w", err)
	}
	data, err := GenerateSchema()
	if err != nil {
		return err
	}
	if err := os.WriteFile(schemaFile, data, filePerm); err != nil {
		return fmt.Errorf("failed to write schema file: %w", err)
	}
	return nil
}
