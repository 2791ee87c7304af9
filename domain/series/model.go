package series

import (
	"fmt"
	"strings"
)

// Model selects which precomputed forecast-comparison dataset an operation
// scores against. The engine is agnostic to the model; the store maps it
// to a dataset.
type Model string

const (
	ModelStatistical Model = "statistical"
	ModelXGB         Model = "xgb"
)

// Models returns the valid model identifiers.
func Models() []Model {
	return []Model{ModelStatistical, ModelXGB}
}

// ParseModel validates a model identifier, defaulting to statistical when
// empty. Unknown identifiers are rejected with the valid enumeration.
func ParseModel(s string) (Model, error) {
	if strings.TrimSpace(s) == "" {
		return ModelStatistical, nil
	}
	m := Model(s)
	for _, known := range Models() {
		if m == known {
			return m, nil
		}
	}
	names := make([]string, 0, len(Models()))
	for _, known := range Models() {
		names = append(names, string(known))
	}
	return "", fmt.Errorf("invalid model: %s. Valid options are: %s", s, strings.Join(names, ", "))
}
