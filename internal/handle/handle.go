// Package handle tracks native objects handed to the host.
//
// The host only ever holds a *Ref. Liveness is an explicit table entry, so
// a Ref can be probed safely after its object was destroyed, whether by an
// explicit Destroy or by the host reclaiming the Ref.
package handle

import (
	"sync"

	"code.hybscloud.com/atomix"
	"go.uber.org/zap"

	"github.com/born-ml/born-host/internal/inspect"
)

// Releaser is implemented by native objects that own resources.
type Releaser interface {
	Release()
}

// Table owns the native side of every live Ref it has issued.
type Table struct {
	mu      sync.RWMutex
	objects map[uint32]any
	next    atomix.Uint32
	logger  *zap.Logger
}

// NewTable creates an empty table. A nil logger disables logging.
func NewTable(logger *zap.Logger) *Table {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Table{
		objects: make(map[uint32]any),
		logger:  logger,
	}
}

// Ref is the host-visible handle to a native object.
type Ref struct {
	id    uint32
	table *Table
}

// Wrap registers obj and returns a new handle to it.
func (t *Table) Wrap(obj any) *Ref {
	id := t.next.Add(1)
	t.mu.Lock()
	t.objects[id] = obj
	t.mu.Unlock()
	return &Ref{id: id, table: t}
}

// Len returns the number of live objects.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.objects)
}

// Close destroys every live object.
func (t *Table) Close() {
	t.mu.Lock()
	objects := t.objects
	t.objects = make(map[uint32]any)
	t.mu.Unlock()

	for _, obj := range objects {
		release(obj)
	}
	if len(objects) > 0 {
		t.logger.Debug("handle table closed", zap.Int("released", len(objects)))
	}
}

func (t *Table) lookup(id uint32) (any, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	obj, ok := t.objects[id]
	return obj, ok
}

func (t *Table) remove(id uint32) (any, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	obj, ok := t.objects[id]
	if ok {
		delete(t.objects, id)
	}
	return obj, ok
}

func release(obj any) {
	if r, ok := obj.(Releaser); ok {
		r.Release()
	}
}

// ID returns the handle's identifier, unique within its table.
func (r *Ref) ID() uint32 { return r.id }

// Native resolves the object behind r. It returns false once the object
// has been destroyed.
func (r *Ref) Native() (any, bool) {
	if r == nil || r.table == nil {
		return nil, false
	}
	return r.table.lookup(r.id)
}

// Alive reports whether the object behind r still exists.
func (r *Ref) Alive() bool {
	_, ok := r.Native()
	return ok
}

// Destroy releases the object behind r. Destroying twice is a no-op and
// reports false.
func (r *Ref) Destroy() bool {
	if r == nil || r.table == nil {
		return false
	}
	obj, ok := r.table.remove(r.id)
	if !ok {
		return false
	}
	release(obj)
	r.table.logger.Debug("handle destroyed", zap.Uint32("id", r.id))
	return true
}

// String implements fmt.Stringer for host inspection.
func (r *Ref) String() string {
	return inspect.Describe(r)
}
