//go:build !windows

package terminal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotATerminal(t *testing.T) {
	regular, err := os.Create(filepath.Join(t.TempDir(), "input"))
	require.NoError(t, err)
	_, err = regular.WriteString("A")
	require.NoError(t, err)
	_, err = regular.Seek(0, 0)
	require.NoError(t, err)
	t.Cleanup(func() { regular.Close() })

	r, w, err := os.Pipe()
	require.NoError(t, err)
	_, err = w.WriteString("A")
	require.NoError(t, err)
	t.Cleanup(func() {
		r.Close()
		w.Close()
	})

	closed, err := os.Open(os.DevNull)
	require.NoError(t, err)
	require.NoError(t, closed.Close())

	files := map[string]*os.File{
		"file":   regular,
		"pipe":   r,
		"closed": closed,
	}

	for name, f := range files {
		t.Run(name, func(t *testing.T) {
			term := New(f)

			c, err := term.ReadCharEchoed()
			assert.ErrorIs(t, err, ErrModeQuery)
			assert.Zero(t, c)

			c, err = term.ReadCharSilent()
			assert.ErrorIs(t, err, ErrModeQuery)
			assert.Zero(t, c)

			ready, err := term.HasPendingInput()
			assert.ErrorIs(t, err, ErrModeQuery)
			assert.False(t, ready)
		})
	}
}
