package validate

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-uigen/pkg/registry"
)

// CheckProps runs a single node's properties through its component schema:
// unknown keys are stripped and reported as warnings, schema defaults fill in
// omitted values, and remaining domain violations are reported as errors. The
// returned map is the sanitized property set with canonical JSON value types;
// it is valid to use even when errors are present (callers decide whether to
// proceed). The code generator and the validator share this path so the two
// never disagree about a property's fate.
func CheckProps(def registry.Definition, props map[string]any) (clean map[string]any, errs, warnings []string) {
	schema := def.Schema
	kept := make(map[string]any, len(props))

	keys := make([]string, 0, len(props))
	for key := range props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if _, known := schema.Properties[key]; !known {
			warnings = append(warnings, fmt.Sprintf("unknown prop %q stripped from %s", key, def.Name))
			continue
		}
		kept[key] = props[key]
	}

	for name, ref := range schema.Properties {
		if ref == nil || ref.Value == nil || ref.Value.Default == nil {
			continue
		}
		if _, present := kept[name]; !present {
			kept[name] = ref.Value.Default
		}
	}

	normalized, err := normalizeJSONValues(kept)
	if err != nil {
		errs = append(errs, fmt.Sprintf("props are not JSON-representable: %v", err))
		return kept, errs, warnings
	}

	if err := schema.VisitJSON(normalized, openapi3.MultiErrors()); err != nil {
		errs = append(errs, schemaErrorMessages(err)...)
	}

	if len(normalized) == 0 {
		return nil, errs, warnings
	}
	return normalized, errs, warnings
}

// normalizeJSONValues coerces Go-native prop values (int, typed slices) into
// canonical JSON types so schema validation and code generation see the same
// shapes a decoded wire payload would produce.
func normalizeJSONValues(props map[string]any) (map[string]any, error) {
	if len(props) == 0 {
		return map[string]any{}, nil
	}
	payload, err := json.Marshal(props)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func schemaErrorMessages(err error) []string {
	if multi, ok := err.(openapi3.MultiError); ok {
		out := make([]string, 0, len(multi))
		for _, item := range multi {
			out = append(out, schemaErrorMessage(item))
		}
		return out
	}
	return []string{schemaErrorMessage(err)}
}

func schemaErrorMessage(err error) string {
	schemaErr, ok := err.(*openapi3.SchemaError)
	if !ok {
		return err.Error()
	}
	pointer := strings.Join(schemaErr.JSONPointer(), ".")
	reason := schemaErr.Reason
	if reason == "" {
		reason = schemaErr.Error()
	}
	if pointer == "" {
		return reason
	}
	return fmt.Sprintf("prop %q: %s", pointer, reason)
}
