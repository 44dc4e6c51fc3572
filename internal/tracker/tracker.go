package tracker

import "encoding/json"

func (t *implTracker) Create(id, source, workflow string) Job {
	now := t.clock.Now()
	job := &Job{
		ID:        id,
		Source:    source,
		Workflow:  workflow,
		Status:    StatusQueued,
		CreatedAt: now,
		UpdatedAt: now,
	}

	t.mu.Lock()
	if _, exists := t.jobs[id]; !exists {
		t.order = append(t.order, id)
	}
	t.jobs[id] = job
	snapshot := job.clone()
	t.mu.Unlock()

	t.publish(eventFor(snapshot, "queued"))
	return snapshot
}

func (t *implTracker) Update(id string, fn func(*Job)) (Job, bool) {
	t.mu.Lock()
	job, ok := t.jobs[id]
	if !ok {
		t.mu.Unlock()
		return Job{}, false
	}
	fn(job)
	job.UpdatedAt = t.clock.Now()
	snapshot := job.clone()
	t.mu.Unlock()

	t.publish(eventFor(snapshot, ""))
	return snapshot, true
}

func (t *implTracker) Get(id string) (Job, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	job, ok := t.jobs[id]
	if !ok {
		return Job{}, false
	}
	return job.clone(), true
}

func (t *implTracker) List(limit int) []Job {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := len(t.order)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Job, 0, n)
	for i := len(t.order) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, t.jobs[t.order[i]].clone())
	}
	return out
}

// RecordCallback stores a completion notification sent by the service.
func (t *implTracker) RecordCallback(id string, payload json.RawMessage) (Job, bool) {
	t.mu.Lock()
	job, ok := t.jobs[id]
	if !ok {
		t.mu.Unlock()
		return Job{}, false
	}
	job.Callbacks++
	job.LastCallback = append(json.RawMessage(nil), payload...)
	job.UpdatedAt = t.clock.Now()
	snapshot := job.clone()
	t.mu.Unlock()

	t.publish(eventFor(snapshot, "callback received"))
	return snapshot, true
}

func (t *implTracker) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	t.mu.Lock()
	t.subs[ch] = struct{}{}
	t.mu.Unlock()

	cancel := func() {
		t.mu.Lock()
		if _, ok := t.subs[ch]; ok {
			delete(t.subs, ch)
			close(ch)
		}
		t.mu.Unlock()
	}
	return ch, cancel
}

// publish never blocks; a subscriber whose buffer is full misses the event.
func (t *implTracker) publish(evt Event) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for ch := range t.subs {
		select {
		case ch <- evt:
		default:
		}
	}
}

func eventFor(job Job, msg string) Event {
	return Event{
		ID:      job.ID,
		Status:  job.Status,
		FileID:  job.FileID,
		Error:   job.Error,
		Message: msg,
		Time:    job.UpdatedAt,
	}
}

func (j *Job) clone() Job {
	cp := *j
	if j.Outputs != nil {
		cp.Outputs = append([]string(nil), j.Outputs...)
	}
	if j.LastCallback != nil {
		cp.LastCallback = append(json.RawMessage(nil), j.LastCallback...)
	}
	return cp
}
