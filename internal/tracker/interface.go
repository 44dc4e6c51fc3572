package tracker

import "encoding/json"

// Tracker keeps the state of every submission made by this process and
// fans out changes to subscribers.
type Tracker interface {
	Create(id, source, workflow string) Job
	Update(id string, fn func(*Job)) (Job, bool)
	Get(id string) (Job, bool)
	// List returns up to limit jobs, newest first. limit <= 0 returns all.
	List(limit int) []Job
	RecordCallback(id string, payload json.RawMessage) (Job, bool)
	// Subscribe returns a channel of events and a function that ends the subscription.
	Subscribe() (<-chan Event, func())
}
