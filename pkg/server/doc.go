// Package server exposes a session's component tree over HTTP and
// WebSocket.
//
// Each connected client gets a Session with its own engine, root mount
// point, and a single event-loop goroutine. Input frames arriving on the
// socket carry a qualified name and a value; the loop drives them into
// the engine and writes the resulting output patches back. Because one
// goroutine owns all graph mutation for a session, the reactive graph
// keeps its single-writer discipline without cross-instance locking.
package server
