package datafile

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/btcsuite/btclog"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// IO Binding Tests
// ============================================================================

func TestReadFunc_Tap(t *testing.T) {
	var seen int
	r := ReadFunc(strings.NewReader("hello").Read).
		Tap(func(p []byte, n int, err error) { seen += len(p) })

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, "hello", string(out))
	require.Equal(t, 5, seen)
}

func TestWriteFunc_Tee(t *testing.T) {
	var a, b bytes.Buffer
	w := WriteFunc(a.Write).Tee(b.Write)

	n, err := w.Write([]byte("both"))
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, "both", a.String())
	require.Equal(t, "both", b.String())

	errFull := errors.New("full")
	failing := WriteFunc(a.Write).Tee(func(p []byte) (int, error) {
		return 0, errFull
	})
	_, err = failing.Write([]byte("x"))
	require.ErrorIs(t, err, errFull)

	short := WriteFunc(func(p []byte) (int, error) { return len(p) - 1, nil })
	_, err = short.Tee(b.Write).Write([]byte("xy"))
	require.ErrorIs(t, err, io.ErrShortWrite)
}

func TestWriteFunc_Tap(t *testing.T) {
	var (
		buf    bytes.Buffer
		writes []string
	)
	w := WriteFunc(buf.Write).Tap(func(p []byte, n int, err error) {
		writes = append(writes, string(p[:n]))
	})

	require.NoError(t, WriteJSON(w, []any{1}, JSONOptions{}))
	require.Equal(t, []string{"[1]\n"}, writes)
}

func TestCloseFunc(t *testing.T) {
	closed := false
	var c io.Closer = CloseFunc(func() error {
		closed = true
		return nil
	})
	require.NoError(t, c.Close())
	require.True(t, closed)
}

func TestFileIO_Logging(t *testing.T) {
	var logs bytes.Buffer
	logger := btclog.NewBackend(&logs).Logger(Subsystem)
	logger.SetLevel(btclog.LevelDebug)
	UseLogger(logger)
	defer DisableLog()

	name := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, WriteJSONFile(name, []any{"abc"}, JSONOptions{}))

	_, err := ReadJSONFile(name)
	require.NoError(t, err)

	require.Contains(t, logs.String(), "Wrote 8 bytes to "+name)
	require.Contains(t, logs.String(), "Read 8 bytes from "+name)
}
