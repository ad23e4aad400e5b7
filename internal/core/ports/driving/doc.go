// Package driving defines the inbound ports of the hexagon: the service
// contracts the presentation layer (CLI, TUI) consumes.
//
// Subscriptions hand back a Subscription handle that the owning screen
// stores and cancels exactly once at teardown. There is no shared
// mutable outer-scope state: one handle per subscription.
package driving
