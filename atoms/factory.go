// Package atoms provides the atom factory: a bidirectional mapping between
// strings and dense positive integers ("atoms").
//
// A single Factory makes unique atoms for the given objects. By atoms, we
// just mean numbers. Atoms are assigned in first-seen order starting at 1 and
// are never reused or renumbered in place, so they are safe to use as keys
// into downstream vector and matrix representations.
//
// Objects are strings. Callers that need typed namespaces (tokens vs document
// ids vs category labels) should either keep one factory per namespace or
// compose prefixed keys such as "token:apples".
package atoms

import (
	"fmt"

	"github.com/corpustools/mekano/errors"
)

// Atom is a dense positive integer uniquely identifying an object within one
// Factory instance. Atom 0 is never assigned.
type Atom int32

// Factory maintains a bimap between objects and atoms.
//
// It is not safe for concurrent use; callers must serialize access. The
// intended role is a per-run identifier allocator with a single writer.
type Factory struct {
	name     string
	forward  map[string]Atom
	backward []string
	locked   bool
}

// New creates an empty, unlocked factory. The name is diagnostic only.
func New(name string) *Factory {
	return &Factory{
		name:    name,
		forward: make(map[string]Atom),
	}
}

// LookupOrInsert returns the atom for obj, assigning the next atom
// (current size + 1) if obj has not been seen before.
//
// Inserting into a locked factory fails with errors.ErrNotFound; bulk callers
// are expected to catch this per-item and skip rather than abort.
func (f *Factory) LookupOrInsert(obj string) (Atom, error) {
	if a, ok := f.forward[obj]; ok {
		return a, nil
	}
	if f.locked {
		return 0, errors.Wrapf(errors.ErrNotFound, "object %q not present in locked factory %s", obj, f.name)
	}
	a := Atom(len(f.backward) + 1)
	f.forward[obj] = a
	f.backward = append(f.backward, obj)
	return a, nil
}

// Lookup returns the atom for obj without inserting. It works regardless of
// lock state.
func (f *Factory) Lookup(obj string) (Atom, bool) {
	a, ok := f.forward[obj]
	return a, ok
}

// Object returns the object previously assigned the given atom.
// Atoms outside [1, Len()] fail with errors.ErrAtomRange.
func (f *Factory) Object(a Atom) (string, error) {
	if a <= 0 || int(a) > len(f.backward) {
		return "", errors.Wrapf(errors.ErrAtomRange, "atom %d in factory %s of size %d", a, f.name, len(f.backward))
	}
	return f.backward[a-1], nil
}

// Contains reports whether obj has an assigned atom. Never mutates.
func (f *Factory) Contains(obj string) bool {
	_, ok := f.forward[obj]
	return ok
}

// Len returns the number of distinct atoms assigned.
func (f *Factory) Len() int {
	return len(f.backward)
}

// Name returns the factory's diagnostic name.
func (f *Factory) Name() string {
	return f.name
}

// Lock transitions the factory to read-only mode. Idempotent.
// After locking, only lookups of already-present objects succeed.
func (f *Factory) Lock() {
	f.locked = true
}

// Locked reports whether the factory is read-only.
func (f *Factory) Locked() bool {
	return f.locked
}

// Remove returns a new, unlocked factory containing every object of f that is
// not in objects, re-inserted in original first-seen order so atoms are dense
// from 1 again. The receiver is unmodified; old atom values are not preserved
// in the result.
func (f *Factory) Remove(objects []string) *Factory {
	drop := make(map[string]struct{}, len(objects))
	for _, obj := range objects {
		drop[obj] = struct{}{}
	}

	nf := New(f.name)
	for _, obj := range f.backward {
		if _, gone := drop[obj]; gone {
			continue
		}
		// Insert into a fresh unlocked factory never fails.
		nf.LookupOrInsert(obj)
	}
	return nf
}

// Objects returns the objects in atom order (atom = index + 1). The returned
// slice is a copy and safe to retain.
func (f *Factory) Objects() []string {
	out := make([]string, len(f.backward))
	copy(out, f.backward)
	return out
}

func (f *Factory) String() string {
	return fmt.Sprintf("<Factory %s: %d atoms>", f.name, len(f.backward))
}
