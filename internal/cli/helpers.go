package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/thoas/go-funk"
	"sigs.k8s.io/yaml"
)

const (
	ScenarioKind = "scenario"

	jsonFormat = "json"
	yamlFormat = "yaml"
)

var (
	pluralKinds = map[string]string{
		ScenarioKind: "scenarios",
	}

	legalOutputTypes = []string{jsonFormat, yamlFormat}
)

func parseAndValidateKindId(arg string) (string, *uuid.UUID, error) {
	kind, idStr, _ := strings.Cut(arg, "/")
	kind = singular(kind)
	if _, ok := pluralKinds[kind]; !ok {
		return "", nil, fmt.Errorf("invalid resource kind: %s", kind)
	}
	if len(idStr) == 0 {
		return kind, nil, nil
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return "", nil, fmt.Errorf("invalid ID: %w", err)
	}
	return kind, &id, nil
}

func singular(kind string) string {
	for singular, plural := range pluralKinds {
		if kind == plural {
			return singular
		}
	}
	return kind
}

func plural(kind string) string {
	return pluralKinds[kind]
}

func validateOutput(output string) error {
	if len(output) > 0 && !funk.Contains(legalOutputTypes, output) {
		return fmt.Errorf("output format must be one of %s", strings.Join(legalOutputTypes, ", "))
	}
	return nil
}

// printStructured writes v as json or yaml. It reports false for the table format.
func printStructured(w io.Writer, v any, output string) (bool, error) {
	var (
		marshalled []byte
		err        error
	)

	switch output {
	case jsonFormat:
		marshalled, err = json.Marshal(v)
	case yamlFormat:
		marshalled, err = yaml.Marshal(v)
	default:
		return false, nil
	}
	if err != nil {
		return true, fmt.Errorf("marshalling resource: %w", err)
	}

	_, err = fmt.Fprintf(w, "%s\n", strings.TrimSuffix(string(marshalled), "\n"))
	return true, err
}

func formatOptional(v *float64, unit string) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%g%s", *v, unit)
}
