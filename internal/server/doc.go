// Package server wires the echo HTTP router: JWT auth, per-IP rate
// limiting, and the lobby/gameplay/websocket handlers backed by
// internal/controller.
package server
