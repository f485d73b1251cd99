package atoms

import (
	"bytes"
	"encoding/gob"
	"os"

	"github.com/corpustools/mekano/errors"
)

// factoryWire is the gob wire form of a Factory. The forward map is rebuilt
// on decode from the object list, which already carries the atom numbering.
type factoryWire struct {
	Name    string
	Objects []string
	Locked  bool
}

// GobEncode implements gob.GobEncoder.
func (f *Factory) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	wire := factoryWire{Name: f.name, Objects: f.backward, Locked: f.locked}
	if err := gob.NewEncoder(&buf).Encode(wire); err != nil {
		return nil, errors.Wrap(err, "encode factory")
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (f *Factory) GobDecode(data []byte) error {
	var wire factoryWire
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&wire); err != nil {
		return errors.Wrap(err, "decode factory")
	}

	f.name = wire.Name
	f.backward = wire.Objects
	f.locked = wire.Locked
	f.forward = make(map[string]Atom, len(wire.Objects))
	for i, obj := range wire.Objects {
		f.forward[obj] = Atom(i + 1)
	}
	return nil
}

// Save writes the whole factory, including lock state, to path.
func (f *Factory) Save(path string) error {
	fout, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer fout.Close()

	if err := gob.NewEncoder(fout).Encode(f); err != nil {
		return errors.Wrapf(err, "save factory %s", f.name)
	}
	return errors.Wrapf(fout.Close(), "close %s", path)
}

// Load reads a factory written by Save. The round trip reproduces an equal
// bimap and lock state.
func Load(path string) (*Factory, error) {
	fin, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer fin.Close()

	f := New("")
	if err := gob.NewDecoder(fin).Decode(f); err != nil {
		return nil, errors.Wrapf(err, "load factory from %s", path)
	}
	return f, nil
}
