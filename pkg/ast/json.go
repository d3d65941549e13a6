package ast

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON emits a text child as a bare JSON string and a node child as an
// object, matching the wire shape planning layers produce.
func (c Child) MarshalJSON() ([]byte, error) {
	if c.Node != nil {
		return json.Marshal(c.Node)
	}
	return json.Marshal(c.Text)
}

// UnmarshalJSON accepts either a JSON string (text leaf) or an object (nested
// node). Numbers and booleans are coerced to their textual form so sloppy
// planner output still round-trips.
func (c *Child) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*c = Child{Text: text}
		return nil
	}

	var node Node
	if err := json.Unmarshal(data, &node); err == nil {
		*c = Child{Node: &node}
		return nil
	}

	var scalar any
	if err := json.Unmarshal(data, &scalar); err != nil {
		return fmt.Errorf("ast: child is neither text nor node: %w", err)
	}
	switch v := scalar.(type) {
	case float64, bool, nil:
		*c = Child{Text: fmt.Sprintf("%v", v)}
		return nil
	default:
		return fmt.Errorf("ast: unsupported child value %T", scalar)
	}
}

// ParseDocument decodes a JSON document payload.
func ParseDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("ast: parse document: %w", err)
	}
	return doc, nil
}
