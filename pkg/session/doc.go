// Package session persists session input state across server restarts
// and reconnects. A store holds serialized snapshots of every input's
// last value keyed by session ID; on reattach the snapshot is restored
// into a freshly mounted component tree.
package session
