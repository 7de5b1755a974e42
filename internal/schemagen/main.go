package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/invopop/jsonschema"

	"github.com/kat-cli/kat/pkg/profile"
)

var outFile = flag.String("o", "profile.v1beta1.json", "Output file for the generated schema")

func main() {
	flag.Parse()

	r := &jsonschema.Reflector{
		// Unknown keys in profile documents are ignored, so the schema must
		// not forbid additional properties.
		AllowAdditionalProperties: true,
	}

	err := r.AddGoComments("github.com/kat-cli/kat", "../../pkg/profile")
	if err != nil {
		log.Fatalf("add go comments: %v", err)
	}

	jss := r.Reflect(profile.New())

	jsData, err := json.MarshalIndent(jss, "", "  ")
	if err != nil {
		log.Fatalf("generate JSON schema: %v", err)
	}

	err = os.WriteFile(*outFile, jsData, 0o600)
	if err != nil {
		log.Fatalf("write schema file: %v", err)
	}
}
