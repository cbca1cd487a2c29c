package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	t.Run("rejects bad arguments", func(t *testing.T) {
		_, err := New("", ColorGreen, &bytes.Buffer{})
		assert.ErrorIs(t, err, ErrEmptyPrefix)

		_, err = New("APP", ColorGreen, nil)
		assert.ErrorIs(t, err, ErrNilWriter)
	})

	t.Run("writes prefix level and message", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New("MAZE", ColorCyan, &buf)
		require.NoError(t, err)

		l.Info("generated 15x25")
		l.Warning("slow generation")
		l.Error("boom")

		out := buf.String()
		assert.Contains(t, out, "MAZE")
		assert.Contains(t, out, "INFO")
		assert.Contains(t, out, "generated 15x25")
		assert.Contains(t, out, "WARNING")
		assert.Contains(t, out, "ERROR")
		assert.Equal(t, 3, bytes.Count(buf.Bytes(), []byte("\n")))
	})
}
