// Package driven defines the outbound ports of the hexagon: the
// contracts Shelfwise consumes from its remote collaborators.
//
// Persistence and auth are delegated to a remote document-store service;
// catalog data comes from a remote HTTP search API; profile pictures go
// to a blob store. The core only ever sees these interfaces: concrete
// adapters live under internal/adapters/driven and are injected at the
// composition root, never read from process-wide state.
package driven
