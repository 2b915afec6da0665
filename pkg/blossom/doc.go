// Package blossom provides a Go client for a Blossom transcription API.
//
// The client covers the two endpoints scribebot needs: full-text
// transcription search and volunteer lookup by username. All methods accept
// a context for cancellation and return typed errors; HTTP failures are
// reported as *APIError with the upstream status code and message.
package blossom
