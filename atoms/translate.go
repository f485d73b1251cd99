package atoms

import (
	"github.com/corpustools/mekano/errors"
)

// Vector is a sparse vector keyed by atom, the minimal shape mekano needs for
// cross-factory remapping of downstream term vectors.
type Vector map[Atom]float64

// Translate remaps an atom from one factory's numbering to another's: the
// atom is resolved to its object in old, and that object is looked up (or
// inserted, if new is unlocked) in new.
//
// If the object is absent from a locked target the error wraps
// errors.ErrNotFound; bulk callers should skip such entries rather than
// abort.
func Translate(old, new *Factory, a Atom) (Atom, error) {
	obj, err := old.Object(a)
	if err != nil {
		return 0, errors.Wrapf(err, "resolve atom in factory %s", old.Name())
	}
	return new.LookupOrInsert(obj)
}

// TranslateVector remaps every entry of v from old's numbering to new's.
// Entries whose object cannot be admitted to new (locked target, unseen
// object) are dropped from the result; any other failure is surfaced.
func TranslateVector(old, new *Factory, v Vector) (Vector, error) {
	out := make(Vector, len(v))
	for a, val := range v {
		na, err := Translate(old, new, a)
		if err != nil {
			if errors.IsNotFoundError(err) {
				continue
			}
			return nil, err
		}
		out[na] = val
	}
	return out, nil
}
