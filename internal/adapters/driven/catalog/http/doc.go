// Package http implements the CatalogClient port against the books
// HTTP API.
//
// Wire format:
//
//	GET  /books        -> {"books": [...]}
//	GET  /books/{id}   -> {"book": {...}}
//	POST /search       -> {"books": [...]} for {"query": q, "maxResults": n}
//
// Every request carries a static Authorization token. Reads fail soft:
// transport errors degrade to empty results carrying
// domain.ErrUnavailable, matching the collaborator contract.
package http
