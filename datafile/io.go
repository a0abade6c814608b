package datafile

import (
	"io"
	"os"
)

// ============================================================================
// IO Bindings
// ============================================================================

// ReadFunc is a functional binding for io.Reader. The readers in this
// package accept any io.Reader; a ReadFunc lets a test feed them data or
// failures without a fixture file.
//
// Example:
//
//	broken := ReadFunc(func(p []byte) (int, error) {
//	    return 0, errors.New("disk on fire")
//	})
//	_, err := ReadCSV(broken, CSVOptions{})
type ReadFunc func(p []byte) (n int, err error)

// Read implements io.Reader.
func (f ReadFunc) Read(p []byte) (int, error) {
	return f(p)
}

// Tap allows side effects without modifying the stream.
func (f ReadFunc) Tap(fn func([]byte, int, error)) ReadFunc {
	return func(p []byte) (int, error) {
		n, err := f(p)
		fn(p[:n], n, err)
		return n, err
	}
}

// WriteFunc is a functional binding for io.Writer.
type WriteFunc func(p []byte) (n int, err error)

// Write implements io.Writer.
func (f WriteFunc) Write(p []byte) (int, error) {
	return f(p)
}

// Tap allows side effects after every write.
func (f WriteFunc) Tap(fn func([]byte, int, error)) WriteFunc {
	return func(p []byte) (int, error) {
		n, err := f(p)
		fn(p, n, err)
		return n, err
	}
}

// Tee writes to every writer in turn and stops at the first failure.
func (f WriteFunc) Tee(others ...WriteFunc) WriteFunc {
	all := append([]WriteFunc{f}, others...)
	return func(p []byte) (int, error) {
		for _, w := range all {
			n, err := w(p)
			if err != nil {
				return n, err
			}
			if n != len(p) {
				return n, io.ErrShortWrite
			}
		}
		return len(p), nil
	}
}

// CloseFunc is a functional binding for io.Closer.
type CloseFunc func() error

// Close implements io.Closer.
func (f CloseFunc) Close() error {
	return f()
}

// counted wraps the bytes moved through a file so they can be logged once
// it is closed.
type counted struct {
	name  string
	verb  string
	prep  string
	bytes int64
}

func (c *counted) add(_ []byte, n int, _ error) {
	c.bytes += int64(n)
}

func (c *counted) logClose(closer CloseFunc) CloseFunc {
	return func() error {
		err := closer()
		log.Debugf("%s %d bytes %s %s", c.verb, c.bytes, c.prep, c.name)
		return err
	}
}

// openRead opens name and returns a reader over it together with the
// function that closes it.
func openRead(name string) (ReadFunc, CloseFunc, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, err
	}
	c := &counted{name: name, verb: "Read", prep: "from"}
	return ReadFunc(f.Read).Tap(c.add), c.logClose(f.Close), nil
}

// createWrite creates or truncates name and returns a writer over it
// together with the function that closes it.
func createWrite(name string) (WriteFunc, CloseFunc, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, nil, err
	}
	c := &counted{name: name, verb: "Wrote", prep: "to"}
	return WriteFunc(f.Write).Tap(c.add), c.logClose(f.Close), nil
}

// writeFile runs write against a new file called name and closes it,
// keeping the first error.
func writeFile(name string, write func(io.Writer) error) (err error) {
	w, closer, err := createWrite(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closer.Close(); err == nil {
			err = cerr
		}
	}()
	return write(w)
}

// readFile runs read against the file called name and closes it.
func readFile[T any](name string, read func(io.Reader) (T, error)) (T, error) {
	r, closer, err := openRead(name)
	if err != nil {
		var zero T
		return zero, err
	}
	defer closer.Close()

	return read(r)
}
