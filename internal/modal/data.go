package modal

// SetData attaches data to the dialog with the given id.
// Returns false without effect if no dialog is registered under id.
// An existing payload for id is overwritten in place.
//
// In CommitDeferred mode the write is queued and applied by the next Flush;
// the id check still happens now.
func (r *Registry) SetData(id string, data any) bool {
	r.mu.Lock()
	if r.indexOf(id) < 0 {
		r.mu.Unlock()
		return false
	}
	if r.mode == CommitDeferred {
		r.pending = append(r.pending, DataEntry{ID: id, Data: data})
		r.mu.Unlock()
		return true
	}
	r.putData(id, data)
	n := len(r.entries)
	r.mu.Unlock()

	r.observers.OnEvent(Event{Op: OpSetData, ID: id, Count: 1, Len: n})
	return true
}

// Flush applies queued writes in the order they were made and returns how many applied.
func (r *Registry) Flush() int {
	r.mu.Lock()
	pending := r.pending
	r.pending = nil
	for _, p := range pending {
		r.putData(p.ID, p.Data)
	}
	n := len(r.entries)
	r.mu.Unlock()

	if len(pending) == 0 {
		return 0
	}
	for _, p := range pending {
		r.observers.OnEvent(Event{Op: OpSetData, ID: p.ID, Count: 1, Len: n})
	}
	r.observers.OnEvent(Event{Op: OpFlush, Count: len(pending), Len: n})
	return len(pending)
}

// Pending returns the number of queued writes.
func (r *Registry) Pending() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.pending)
}

// Data returns the payload stored for id.
func (r *Registry) Data(id string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.dataIndex(id); i >= 0 {
		return r.data[i].Data, true
	}
	return nil, false
}

// AllData returns a copy of every payload entry in insertion order.
func (r *Registry) AllData() []DataEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]DataEntry, len(r.data))
	copy(out, r.data)
	return out
}

// ResetData drops the payload for id. No-op if there is none.
func (r *Registry) ResetData(id string) {
	r.mu.Lock()
	i := r.dataIndex(id)
	if i < 0 {
		r.mu.Unlock()
		return
	}
	r.data = append(r.data[:i], r.data[i+1:]...)
	n := len(r.entries)
	r.mu.Unlock()

	r.observers.OnEvent(Event{Op: OpResetData, ID: id, Count: 1, Len: n})
}

// ResetAllData clears the payload table. Queued writes are kept and still apply on Flush.
func (r *Registry) ResetAllData() {
	r.mu.Lock()
	cleared := len(r.data)
	r.data = nil
	n := len(r.entries)
	r.mu.Unlock()

	r.observers.OnEvent(Event{Op: OpResetAllData, Count: cleared, Len: n})
}

// putData overwrites or appends. Caller holds mu.
func (r *Registry) putData(id string, data any) {
	if i := r.dataIndex(id); i >= 0 {
		r.data[i].Data = data
		return
	}
	r.data = append(r.data, DataEntry{ID: id, Data: data})
}

// dataIndex returns the index of id's payload, or -1. Caller holds mu.
func (r *Registry) dataIndex(id string) int {
	for i, d := range r.data {
		if d.ID == id {
			return i
		}
	}
	return -1
}
