// Package tree models the layout tree returned by `i3-msg -t get_tree`
// (and swaymsg) and reduces it into a uniform node graph.
package tree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// RawNode is the subset of the manager's tree reply this program reads.
// Every other field of the reply (rect, layout, focus...) is ignored.
type RawNode struct {
	Window        *uint64   `json:"window"`
	Type          string    `json:"type"`
	Name          *string   `json:"name"`
	Nodes         []RawNode `json:"nodes"`
	FloatingNodes []RawNode `json:"floating_nodes"`
}

// DecodeError reports a reply that is not valid JSON or lacks a required
// structural field.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("decode tree: %v", e.Err)
	}
	return fmt.Sprintf("decode tree at %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

var requiredFields = []string{"type", "nodes", "floating_nodes"}

// Decode reads a single tree document from r.
func Decode(r io.Reader) (*RawNode, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &DecodeError{Err: fmt.Errorf("read reply: %w", err)}
	}
	return DecodeBytes(data)
}

// DecodeBytes parses data as a tree document. The required fields are
// checked at every depth before the typed decode so that a missing list is
// not mistaken for an empty one.
func DecodeBytes(data []byte) (*RawNode, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &DecodeError{Err: fmt.Errorf("empty reply")}
	}

	var generic interface{}
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if err := validate(generic, "$"); err != nil {
		return nil, err
	}

	var root RawNode
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return &root, nil
}

func validate(v interface{}, path string) error {
	obj, ok := v.(map[string]interface{})
	if !ok {
		return &DecodeError{Path: path, Err: fmt.Errorf("expected object, got %s", jsonKind(v))}
	}

	var missing []string
	for _, field := range requiredFields {
		if val, ok := obj[field]; !ok || val == nil {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return &DecodeError{Path: path, Err: fmt.Errorf("missing required field(s): %s", strings.Join(missing, ", "))}
	}
	if _, ok := obj["type"].(string); !ok {
		return &DecodeError{Path: path + ".type", Err: fmt.Errorf("expected string, got %s", jsonKind(obj["type"]))}
	}

	for _, field := range []string{"nodes", "floating_nodes"} {
		children, ok := obj[field].([]interface{})
		if !ok {
			return &DecodeError{Path: path + "." + field, Err: fmt.Errorf("expected array, got %s", jsonKind(obj[field]))}
		}
		for i, child := range children {
			if err := validate(child, fmt.Sprintf("%s.%s[%d]", path, field, i)); err != nil {
				return err
			}
		}
	}
	return nil
}

func jsonKind(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []interface{}:
		return "array"
	case map[string]interface{}:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
