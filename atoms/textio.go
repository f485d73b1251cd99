package atoms

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/corpustools/mekano/errors"
)

// WriteText writes each object on its own line, in atom order, so that the
// line number (1-based) is the object's atom. The output is enough to
// reconstruct the factory and doubles as e.g. an LDA vocabulary file.
//
// Objects containing newlines cannot round-trip through this format and are
// rejected.
func (f *Factory) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for i, obj := range f.backward {
		if strings.ContainsRune(obj, '\n') {
			return errors.Newf("object for atom %d contains a newline", i+1)
		}
		if _, err := bw.WriteString(obj); err != nil {
			return errors.Wrap(err, "write object")
		}
		if err := bw.WriteByte('\n'); err != nil {
			return errors.Wrap(err, "write object")
		}
	}
	return bw.Flush()
}

// SaveText writes the factory to path in the one-object-per-line format.
func (f *Factory) SaveText(path string) error {
	fout, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer fout.Close()

	if err := f.WriteText(fout); err != nil {
		return err
	}
	return errors.Wrapf(fout.Close(), "close %s", path)
}

// ReadText reconstructs a factory from the one-object-per-line format:
// each line is inserted in order, so line number = atom. The result is
// unlocked.
func ReadText(r io.Reader, name string) (*Factory, error) {
	f := New(name)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		obj := scanner.Text()
		if _, ok := f.forward[obj]; ok {
			return nil, errors.Newf("duplicate object %q at line %d", obj, f.Len()+1)
		}
		f.LookupOrInsert(obj)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read objects")
	}
	return f, nil
}

// LoadText reads a factory from a file written by SaveText.
func LoadText(path, name string) (*Factory, error) {
	fin, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer fin.Close()
	return ReadText(fin, name)
}
