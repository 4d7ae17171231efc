package registry

import "sync"

// Notifier is a change source: fn is called after each of its changes until cancel.
type Notifier interface {
	Notify(fn func()) (cancel func())
}

// View is a list-screen-local snapshot of a registry: the last read contents
// and the items derived from them by a Projection.
type View[T Record[T]] struct {
	reg *Registry[T]

	mutex     sync.Mutex
	proj      Projection[T]
	contents  []T
	items     []T
	listeners []func(items []T)
	deps      []Notifier // sources of the display fields the projection reads, e.g. a referenced registry
	cancel    func()
}

// NewView returns a View already focused on reg.
func NewView[T Record[T]](reg *Registry[T], proj Projection[T]) *View[T] {
	v := &View[T]{reg: reg, proj: proj}
	v.Focus()
	return v
}

// Focus re-reads the registry and recomputes the items.
func (v *View[T]) Focus() {
	contents := v.reg.ReadAll()

	v.mutex.Lock()
	v.contents = contents
	v.recompute()
	v.mutex.Unlock()
}

func (v *View[T]) SetSearch(query string) {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	v.proj.Search = query
	v.recompute()
}

func (v *View[T]) SetFilter(name, value string) {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	v.proj = v.proj.WithFilter(name, value)
	v.recompute()
}

// Items returns a copy of the projected items.
func (v *View[T]) Items() []T {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	items := make([]T, len(v.items))
	copy(items, v.items)
	return items
}

// OnChange registers fn to be called with the new items each time a watched view refreshes.
func (v *View[T]) OnChange(fn func(items []T)) {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	v.listeners = append(v.listeners, fn)
}

// DependOn makes a watched view also refresh on changes of deps. Must be called before Watch.
func (v *View[T]) DependOn(deps ...Notifier) *View[T] {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	v.deps = append(v.deps, deps...)
	return v
}

// Watch subscribes the view to its registry and its dependencies: every change refreshes it.
// Watching twice is a no-op.
func (v *View[T]) Watch() {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	if v.cancel != nil {
		return
	}

	cancels := []func(){v.reg.Notify(v.refresh)}
	for _, dep := range v.deps {
		cancels = append(cancels, dep.Notify(v.refresh))
	}
	v.cancel = func() {
		for _, cancel := range cancels {
			cancel()
		}
	}
}

func (v *View[T]) refresh() {
	v.Focus()

	v.mutex.Lock()
	items := make([]T, len(v.items))
	copy(items, v.items)
	listeners := v.listeners
	v.mutex.Unlock()

	for _, fn := range listeners {
		fn(items)
	}
}

// Close stops watching the registry.
func (v *View[T]) Close() {
	v.mutex.Lock()
	cancel := v.cancel
	v.cancel = nil
	v.mutex.Unlock()
	if cancel != nil {
		cancel()
	}
}

// recompute must be called with the mutex held.
func (v *View[T]) recompute() {
	v.items = v.proj.Apply(v.contents)
}
