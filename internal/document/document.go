package document

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/roach88/simattr/internal/attr"
	"github.com/roach88/simattr/internal/equation"
	"github.com/roach88/simattr/internal/migrate"
	"github.com/roach88/simattr/internal/object"
	"github.com/roach88/simattr/internal/schema"
)

// RestoredHook is invoked once per instance reloaded from storage, before
// any other consumer observes it. The migration engine's Run is the
// default handler.
type RestoredHook func(inst *object.Instance) (applied []string, err error)

// Document is one open session: registry, migration engine, storage and
// the live instances, in creation order.
//
// Documents are single-threaded; all mutation happens on the host's one
// mutation thread.
type Document struct {
	reg   *schema.Registry
	eng   *migrate.Engine
	store *Store

	ids     []string
	insts   map[string]*object.Instance
	applied map[string][]string

	onRestored RestoredHook
}

// Open opens or creates a document at path, declares the built-in object
// types, and reloads every persisted instance through the restore hook.
func Open(ctx context.Context, path string) (*Document, error) {
	reg := schema.NewRegistry()
	if err := schema.RegisterBuiltins(reg); err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	if err := equation.Register(reg); err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}

	store, err := OpenStore(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}

	eng := migrate.Builtin()
	d := &Document{
		reg:        reg,
		eng:        eng,
		store:      store,
		insts:      make(map[string]*object.Instance),
		applied:    make(map[string][]string),
		onRestored: eng.Run,
	}

	if err := d.load(ctx); err != nil {
		store.Close()
		return nil, err
	}
	return d, nil
}

// load reconstitutes every persisted instance and runs the restore hook on
// each before it becomes visible.
func (d *Document) load(ctx context.Context) error {
	rows, err := d.store.ReadObjects(ctx)
	if err != nil {
		return err
	}
	for _, row := range rows {
		state, err := attr.UnmarshalState([]byte(row.State))
		if err != nil {
			return fmt.Errorf("load object %s: %w", row.ID, err)
		}
		inst, err := d.reg.Restore(row.Type, state)
		if err != nil {
			return fmt.Errorf("load object %s: %w", row.ID, err)
		}
		applied, err := d.onRestored(inst)
		if err != nil {
			return fmt.Errorf("load object %s: %w", row.ID, err)
		}
		d.ids = append(d.ids, row.ID)
		d.insts[row.ID] = inst
		d.applied[row.ID] = applied
	}
	return nil
}

// Close closes the backing store. The document must not be used after.
func (d *Document) Close() error {
	return d.store.Close()
}

// Registry returns the document's schema registry.
func (d *Document) Registry() *schema.Registry { return d.reg }

// Engine returns the document's migration engine.
func (d *Document) Engine() *migrate.Engine { return d.eng }

// Create instantiates a fresh object of a declared type and adds it to the
// document under a new ID.
func (d *Document) Create(typeTag string) (string, *object.Instance, error) {
	inst, err := d.reg.Instantiate(typeTag)
	if err != nil {
		return "", nil, err
	}
	id := uuid.NewString()
	d.ids = append(d.ids, id)
	d.insts[id] = inst
	return id, inst, nil
}

// ComposeEquation composes an equation instance of the given variant and
// adds it to the document. Declaration order among equations is the order
// of ComposeEquation calls.
func (d *Document) ComposeEquation(v equation.Variant) (string, *equation.Instance, error) {
	eq, err := equation.Compose(d.reg, v)
	if err != nil {
		return "", nil, err
	}
	id := uuid.NewString()
	d.ids = append(d.ids, id)
	d.insts[id] = eq.Instance
	return id, eq, nil
}

// Delete removes an instance from the document and its persisted row.
// Unlike Save, the row is gone as soon as Delete returns; a dropped
// instance must not reappear on reload even if the document is never
// saved again.
func (d *Document) Delete(ctx context.Context, id string) error {
	if _, ok := d.insts[id]; !ok {
		return fmt.Errorf("delete object %s: no such instance", id)
	}
	if err := d.store.DeleteObject(ctx, id); err != nil {
		return err
	}
	delete(d.insts, id)
	delete(d.applied, id)
	d.ids = slices.DeleteFunc(d.ids, func(cur string) bool { return cur == id })
	return nil
}

// Get returns one instance by ID.
func (d *Document) Get(id string) (*object.Instance, bool) {
	inst, ok := d.insts[id]
	return inst, ok
}

// IDs returns the instance IDs in creation order.
func (d *Document) IDs() []string {
	out := make([]string, len(d.ids))
	copy(out, d.ids)
	return out
}

// AppliedRules returns the migration rules applied to an instance when it
// was restored. Empty for freshly created instances and current-schema
// reloads.
func (d *Document) AppliedRules(id string) []string {
	return d.applied[id]
}

// Equations returns the document's equation instances in creation order,
// ready for priority ordering.
func (d *Document) Equations() []*equation.Instance {
	var out []*equation.Instance
	for _, id := range d.ids {
		inst := d.insts[id]
		if eq, err := equation.Wrap(inst); err == nil {
			out = append(out, eq)
		}
	}
	return out
}

// Save persists every instance's state in canonical form.
func (d *Document) Save(ctx context.Context) error {
	for pos, id := range d.ids {
		inst := d.insts[id]
		data, err := attr.MarshalState(inst.State())
		if err != nil {
			return fmt.Errorf("save object %s: %w", id, err)
		}
		row := objectRow{
			ID:       id,
			Type:     inst.Type(),
			Position: pos,
			State:    string(data),
		}
		if err := d.store.WriteObject(ctx, row); err != nil {
			return fmt.Errorf("save object %s: %w", id, err)
		}
	}
	return nil
}
