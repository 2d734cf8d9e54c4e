package behavior

import (
	logging "github.com/op/go-logging"
)

var (
	logger = logging.MustGetLogger("mebot-behavior")
)

// Registry is an append-only list of entries, kept in registration order.
// Lookups scan from the front, so when two entries share an ID the one
// registered first always answers.
type Registry struct {
	entries []Entry
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends e. Duplicate IDs are accepted; the later entry can
// never be reached.
func (r *Registry) Register(e Entry) {
	if _, found := r.FindByID(e.id); found {
		logger.Warningf("mode %d (%s) is already registered, the new entry will never run", e.id, e.Name())
	}
	r.entries = append(r.entries, e)
}

// FindByID returns the first entry with the given id.
func (r *Registry) FindByID(id int) (Entry, bool) {
	for _, e := range r.entries {
		if e.id == id {
			return e, true
		}
	}
	return Entry{}, false
}

func (r *Registry) Len() int {
	return len(r.entries)
}

// Entries returns a copy of the registered entries in registration order.
func (r *Registry) Entries() []Entry {
	cpy := make([]Entry, len(r.entries))
	copy(cpy, r.entries)
	return cpy
}
