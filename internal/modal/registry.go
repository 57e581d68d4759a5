package modal

import (
	"fmt"
	"sync"
)

// CommitMode controls when SetData writes land in the data table.
type CommitMode int

const (
	// CommitSync applies writes before SetData returns.
	CommitSync CommitMode = iota
	// CommitDeferred queues writes until Flush, typically on the next UI turn.
	CommitDeferred
)

func (m CommitMode) String() string {
	switch m {
	case CommitSync:
		return "sync"
	case CommitDeferred:
		return "deferred"
	default:
		return "unknown"
	}
}

// Option configures a Registry.
type Option func(*Registry)

// WithCommitMode sets how SetData writes are applied.
func WithCommitMode(m CommitMode) Option {
	return func(r *Registry) {
		r.mode = m
	}
}

// WithObserver adds an observer notified after every mutation.
// May be given more than once; observers run in the order added.
func WithObserver(o Observer) Option {
	return func(r *Registry) {
		if o != nil {
			r.observers = append(r.observers, o)
		}
	}
}

// Registry maps dialog ids to their handles and to arbitrary payload.
// Construct one per application session and pass it to whatever needs it.
type Registry struct {
	mu        sync.RWMutex
	entries   []Entry
	data      []DataEntry
	pending   []DataEntry
	mode      CommitMode
	observers multiObserver
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Mode returns the registry's commit mode.
func (r *Registry) Mode() CommitMode {
	return r.mode
}

// Register appends e to the modal sequence.
// With overwrite, the handle of the first entry sharing e.ID is replaced in
// place instead. Without it, duplicate ids are appended as-is.
func (r *Registry) Register(e Entry, overwrite bool) {
	r.mu.Lock()
	op := OpRegister
	if overwrite {
		if i := r.indexOf(e.ID); i >= 0 {
			r.entries[i].Handle = e.Handle
			op = OpReplace
		}
	}
	if op == OpRegister {
		r.entries = append(r.entries, e)
	}
	n := len(r.entries)
	r.mu.Unlock()

	r.observers.OnEvent(Event{Op: op, ID: e.ID, Count: 1, Len: n})
}

// Lookup returns the handle of the first entry with the given id.
func (r *Registry) Lookup(id string) (Handle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.indexOf(id); i >= 0 {
		return r.entries[i].Handle, nil
	}
	return nil, fmt.Errorf("lookup %q: %w", id, ErrNotFound)
}

// All returns a copy of every entry in registration order.
func (r *Registry) All() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Open returns the entries whose handle is currently visible, in registration order.
func (r *Registry) Open() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Entry
	for _, e := range r.entries {
		if e.Handle != nil && e.Handle.Visible() {
			out = append(out, e)
		}
	}
	return out
}

// HighestLayer returns one more than the greatest layer position among open dialogs.
// Returns ErrEmptyStack when nothing is open; callers pick their own baseline.
func (r *Registry) HighestLayer() (int, error) {
	open := r.Open()
	if len(open) == 0 {
		return 0, ErrEmptyStack
	}
	top := open[0].Handle.LayerPosition()
	for _, e := range open[1:] {
		if p := e.Handle.LayerPosition(); p > top {
			top = p
		}
	}
	return top + 1, nil
}

// Len returns the number of entries, duplicates included.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Remove deletes every entry with the given id.
// Payload attached to the id is left alone.
func (r *Registry) Remove(id string) error {
	r.mu.Lock()
	kept := r.entries[:0]
	for _, e := range r.entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	removed := len(r.entries) - len(kept)
	clear(r.entries[len(kept):])
	r.entries = kept
	n := len(r.entries)
	r.mu.Unlock()

	if removed == 0 {
		return fmt.Errorf("remove %q: %w", id, ErrNotFound)
	}
	r.observers.OnEvent(Event{Op: OpRemove, ID: id, Count: removed, Len: n})
	return nil
}

// indexOf returns the index of the first entry with id, or -1. Caller holds mu.
func (r *Registry) indexOf(id string) int {
	for i, e := range r.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}
