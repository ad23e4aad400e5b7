// Package services implements the real-time collection synchronization
// and enrichment layer: the core of Shelfwise.
//
// Each service subscribes to live remote collections (a user's saved
// books, a book's reviews), cross-references them against secondary
// lookups (reviewer profiles, catalog records), merges the results into
// renderable view models, and keeps the locally-typed membership set of
// saved books in sync with its live feed, while a separate debounced
// search stream can replace the displayed list at any time.
//
// Shared state discipline: every subscription's state is owned by its
// own goroutine and only ever replaced wholesale, never mutated in
// place, so consumers cannot observe torn reads. Within one stream,
// emissions preserve remote event order; across streams nothing is
// guaranteed or required.
package services
