package registry

import (
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// errors
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("record was modified since it was loaded")
	ErrDuplicateID = errors.New("a record with this id already exists")
)

// Record is implemented by every entity stored in a Registry.
// The With* methods return a copy; records are values.
type Record[T any] interface {
	RecordID() string
	WithRecordID(id string) T
	RecordRevision() int
	WithRecordRevision(rev int) T
}

type EventKind string

const (
	Created EventKind = "created"
	Updated EventKind = "updated"
	Deleted EventKind = "deleted"
)

// Event describes one successful mutation. Record is the zero value for Deleted events.
type Event[T any] struct {
	Kind   EventKind
	ID     string
	Record T
}

type subscription[T any] struct {
	id string
	fn func(Event[T])
}

// Registry is the in-memory store of all records of one entity type, kept in insertion order.
type Registry[T Record[T]] struct {
	mutex   sync.RWMutex
	records []T
	ids     *idGenerator
	seqFunc SequenceFunc[T]
	subs    []subscription[T]

	// pending events, queued under the write lock and delivered in that order
	queueMu  sync.Mutex
	queue    []delivery[T]
	draining bool
}

type delivery[T any] struct {
	evt  Event[T]
	subs []subscription[T]
}

// New returns an empty Registry. seqFunc tells which id sequence a record without id draws from;
// when nil, Create requires an explicit id.
func New[T Record[T]](seqFunc SequenceFunc[T]) *Registry[T] {
	return &Registry[T]{
		ids:     newIDGenerator(),
		seqFunc: seqFunc,
	}
}

func (reg *Registry[T]) indexOf(id string) int {
	for i, rec := range reg.records {
		if rec.RecordID() == id {
			return i
		}
	}
	return -1
}

func (reg *Registry[T]) taken(id string) bool { return reg.indexOf(id) >= 0 }

// Create appends rec to the registry, generating its id when it has none.
func (reg *Registry[T]) Create(rec T) (T, error) {
	reg.mutex.Lock()

	id := rec.RecordID()
	switch {
	case id == "" && reg.seqFunc == nil:
		reg.mutex.Unlock()
		var zero T
		return zero, errors.New("registry: record has no id")
	case id == "":
		id = reg.ids.next(reg.seqFunc(rec))
	case reg.taken(id):
		reg.mutex.Unlock()
		var zero T
		return zero, errors.Wrap(ErrDuplicateID, id)
	case reg.seqFunc == nil:
		reg.ids.observe(Sequence{}, id)
	default:
		reg.ids.observe(reg.seqFunc(rec), id)
	}

	rec = rec.WithRecordID(id).WithRecordRevision(1)
	reg.records = append(reg.records, rec)
	reg.publishAndUnlock(Event[T]{Kind: Created, ID: id, Record: rec})
	return rec, nil
}

// Read returns the record with the given id.
func (reg *Registry[T]) Read(id string) (T, error) {
	reg.mutex.RLock()
	defer reg.mutex.RUnlock()

	if i := reg.indexOf(id); i >= 0 {
		return reg.records[i], nil
	}
	var zero T
	return zero, ErrNotFound
}

// ReadAll returns a copy of all records in insertion order.
func (reg *Registry[T]) ReadAll() []T {
	reg.mutex.RLock()
	defer reg.mutex.RUnlock()

	recs := make([]T, len(reg.records))
	copy(recs, reg.records)
	return recs
}

func (reg *Registry[T]) Len() int {
	reg.mutex.RLock()
	defer reg.mutex.RUnlock()
	return len(reg.records)
}

// Update replaces the record with the given id in place. The stored id never changes.
// A non-zero revision on rec must match the stored one, otherwise ErrConflict is returned.
func (reg *Registry[T]) Update(id string, rec T) (T, error) {
	reg.mutex.Lock()

	i := reg.indexOf(id)
	if i < 0 {
		reg.mutex.Unlock()
		var zero T
		return zero, ErrNotFound
	}
	stored := reg.records[i]
	if rev := rec.RecordRevision(); rev != 0 && rev != stored.RecordRevision() {
		reg.mutex.Unlock()
		var zero T
		return zero, errors.Wrapf(ErrConflict, "%s: revision %d, stored %d", id, rev, stored.RecordRevision())
	}

	rec = rec.WithRecordID(id).WithRecordRevision(stored.RecordRevision() + 1)
	reg.records[i] = rec
	reg.publishAndUnlock(Event[T]{Kind: Updated, ID: id, Record: rec})
	return rec, nil
}

// Delete removes the record with the given id, keeping the order of the others.
// It reports whether a record was removed.
func (reg *Registry[T]) Delete(id string) bool {
	reg.mutex.Lock()

	i := reg.indexOf(id)
	if i < 0 {
		reg.mutex.Unlock()
		return false
	}
	reg.records = append(reg.records[:i:i], reg.records[i+1:]...)
	reg.publishAndUnlock(Event[T]{Kind: Deleted, ID: id})
	return true
}

// Notify is Subscribe without the event, so a Registry can be followed as a Notifier.
func (reg *Registry[T]) Notify(fn func()) (cancel func()) {
	return reg.Subscribe(func(Event[T]) { fn() })
}

// Subscribe registers fn to be called after every mutation, in mutation order.
// fn runs synchronously on a mutating goroutine with no registry lock held.
func (reg *Registry[T]) Subscribe(fn func(Event[T])) (cancel func()) {
	reg.mutex.Lock()
	defer reg.mutex.Unlock()

	sub := subscription[T]{id: uuid.NewString(), fn: fn}
	reg.subs = append(reg.subs, sub)

	var once sync.Once
	return func() {
		once.Do(func() {
			reg.mutex.Lock()
			defer reg.mutex.Unlock()
			for i, s := range reg.subs {
				if s.id == sub.id {
					reg.subs = append(reg.subs[:i:i], reg.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// publishAndUnlock must be called with the write lock held.
// The event is queued before the lock is released, so queue order is mutation order.
func (reg *Registry[T]) publishAndUnlock(evt Event[T]) {
	subs := make([]subscription[T], len(reg.subs))
	copy(subs, reg.subs)

	reg.queueMu.Lock()
	reg.queue = append(reg.queue, delivery[T]{evt: evt, subs: subs})
	reg.mutex.Unlock()
	if reg.draining {
		// another goroutine (or a subscriber up the stack) delivers it
		reg.queueMu.Unlock()
		return
	}
	reg.draining = true
	reg.queueMu.Unlock()

	for {
		reg.queueMu.Lock()
		if len(reg.queue) == 0 {
			reg.draining = false
			reg.queueMu.Unlock()
			return
		}
		d := reg.queue[0]
		reg.queue = reg.queue[1:]
		reg.queueMu.Unlock()

		for _, sub := range d.subs {
			sub.fn(d.evt)
		}
	}
}
