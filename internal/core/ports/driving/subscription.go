package driving

// Subscription is the teardown handle returned by every live
// subscription. Cancel must be invoked exactly once when the consuming
// screen goes away; it is idempotent, and after it returns no further
// emissions occur. In-flight enrichment or materialization work is not
// aborted, but its result is dropped on completion.
type Subscription interface {
	// ID identifies the subscription instance, for logging.
	ID() string

	// Cancel tears the subscription down.
	Cancel()
}
