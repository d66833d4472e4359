package pkg

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestCombinedWriter_Write(t *testing.T) {
	sb1 := &strings.Builder{}
	sb1.WriteString("log-start|")
	sb2 := &strings.Builder{}

	cw := NewCombinedWriter(sb1, nil, sb2)
	require.NotNil(t, cw)
	assert.Len(t, cw.Writers, 2)

	line1 := "level=info msg=registered\n"
	line2 := "level=warn msg=\"login failed\"\n"
	n, err := cw.Write([]byte(line1))
	require.NoError(t, err)
	assert.Equal(t, len(line1)*2, n)
	n, err = cw.Write([]byte(line2))
	require.NoError(t, err)
	assert.Equal(t, len(line2)*2, n)

	assert.Equal(t, "log-start|"+line1+line2, sb1.String())
	assert.Equal(t, line1+line2, sb2.String())
}

func TestCombinedWriter_Write_WithErrors(t *testing.T) {
	sb := &strings.Builder{}
	cw := NewCombinedWriter(&brokenWriter{err: errors.New("disk full")}, sb, &brokenWriter{err: errors.New("closed")})

	msg := "a message"
	n, err := cw.Write([]byte(msg))
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
	assert.Contains(t, err.Error(), "disk full")
	assert.Contains(t, err.Error(), "closed")

	// written only to the string builder
	assert.Equal(t, len(msg), n)
	assert.Equal(t, msg, sb.String())
}

type brokenWriter struct {
	err error
}

func (bw *brokenWriter) Write([]byte) (int, error) {
	return 0, bw.err
}
