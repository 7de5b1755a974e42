package profile

import (
	_ "embed"

	"github.com/kat-cli/kat/pkg/yaml"
)

//go:generate go run ../../internal/schemagen -o profile.v1beta1.json

//go:embed profile.v1beta1.json
var schemaJSON []byte

// DefaultValidator validates profile documents against the embedded JSON schema.
var DefaultValidator = yaml.MustNewValidator("/profile.v1beta1.json", schemaJSON)
