package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/weft-ui/weft/pkg/engine"
	"github.com/weft-ui/weft/pkg/scope"
)

// Snapshot is the JSON-serializable state of one session: every bound
// input's last value, keyed by qualified name. Outputs are not stored;
// they are recomputed from the inputs on restore.
type Snapshot struct {
	// SessionID is the session this snapshot belongs to.
	SessionID string `json:"session_id"`

	// SavedAt is when the snapshot was taken.
	SavedAt time.Time `json:"saved_at"`

	// Inputs holds the qualified name to value mapping.
	Inputs map[scope.Name]string `json:"inputs,omitempty"`

	// Version is the serialization format version.
	Version int `json:"version"`
}

// CurrentSnapshotVersion is the current serialization format version.
// Increment on breaking format changes.
const CurrentSnapshotVersion = 1

// Capture takes a snapshot of an engine's input state.
func Capture(sessionID string, eng *engine.Engine) *Snapshot {
	return &Snapshot{
		SessionID: sessionID,
		SavedAt:   time.Now(),
		Inputs:    eng.SnapshotInputs(),
	}
}

// Restore pushes a snapshot's input values into an engine. Inputs in the
// snapshot that the freshly mounted tree did not bind are skipped; the
// component structure may have changed between save and restore.
func (s *Snapshot) Restore(eng *engine.Engine) {
	eng.RestoreInputs(s.Inputs)
}

// Serialize converts a snapshot to bytes.
func Serialize(s *Snapshot) ([]byte, error) {
	s.Version = CurrentSnapshotVersion
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("serialize snapshot: %w", err)
	}
	return data, nil
}

// Deserialize converts bytes back to a snapshot.
func Deserialize(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("deserialize snapshot: %w", err)
	}
	if s.Version > CurrentSnapshotVersion {
		return nil, fmt.Errorf("deserialize snapshot: unsupported version %d", s.Version)
	}
	return &s, nil
}
