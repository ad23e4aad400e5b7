// Package memory provides in-memory implementations of the driven
// storage ports. The document store includes full collection
// subscription fan-out, which makes it both the test double for the
// core services and the zero-setup backend for the demo mode.
package memory
