// Package codec centralizes payload encoding for model snapshots.
//
// Snapshot files are self-describing: they record the codec name in their
// header, and loads resolve the codec via ByName. Changing the default codec
// therefore never breaks existing files.
package codec

import (
	"encoding/json"

	gojson "github.com/goccy/go-json"
)

// Codec encodes/decodes snapshot payloads.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// JSON is the standard-library JSON codec. The most portable option.
type JSON struct{}

func (JSON) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (JSON) Name() string                       { return "json" }

// GoJSON is a JSON codec backed by github.com/goccy/go-json.
// Wire-compatible with JSON, faster on large snapshots.
type GoJSON struct{}

func (GoJSON) Marshal(v any) ([]byte, error)      { return gojson.Marshal(v) }
func (GoJSON) Unmarshal(data []byte, v any) error { return gojson.Unmarshal(data, v) }
func (GoJSON) Name() string                       { return "go-json" }

// Default is the codec used for newly written snapshots.
var Default Codec = GoJSON{}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}
