package server

import (
	"encoding/json"
	"fmt"

	"github.com/weft-ui/weft/pkg/engine"
	"github.com/weft-ui/weft/pkg/scope"
)

// Frame types on the wire.
const (
	// FrameInput is a client-to-server input change: Name and Value set.
	FrameInput = "input"

	// FramePatch is a server-to-client output update: Patches set.
	FramePatch = "patch"

	// FrameError reports a rejected input back to the client.
	FrameError = "error"

	// FrameSession announces the session ID on open. Clients present it
	// on reconnect to resume their input state.
	FrameSession = "session"
)

// Frame is the JSON wire envelope for both directions.
type Frame struct {
	Type string `json:"type"`

	// Input fields.
	Name  scope.Name `json:"name,omitempty"`
	Value string     `json:"value,omitempty"`

	// Patch fields.
	Patches []PatchEntry `json:"patches,omitempty"`

	// Error fields.
	Message string `json:"message,omitempty"`

	// Session fields.
	Session string `json:"session,omitempty"`
}

// PatchEntry is one output update in a patch frame.
type PatchEntry struct {
	Name  scope.Name `json:"name"`
	Value string     `json:"value"`
}

// DecodeFrame parses a wire message.
func DecodeFrame(data []byte) (*Frame, error) {
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}
	if f.Type == "" {
		return nil, fmt.Errorf("decode frame: missing type")
	}
	return &f, nil
}

// EncodeFrame serializes a frame for the wire.
func EncodeFrame(f *Frame) ([]byte, error) {
	data, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	return data, nil
}

// patchFrame builds a patch frame from engine patches.
func patchFrame(patches []engine.Patch) *Frame {
	entries := make([]PatchEntry, len(patches))
	for i, p := range patches {
		entries[i] = PatchEntry{Name: p.Name, Value: p.Value}
	}
	return &Frame{Type: FramePatch, Patches: entries}
}
