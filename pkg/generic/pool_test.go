package generic

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPool(t *testing.T) {
	created := 0
	p := NewPool(func() *bytes.Buffer {
		created++
		return &bytes.Buffer{}
	})

	buf := p.Get()
	require.NotNil(t, buf)
	require.Equal(t, 1, created)
	p.Put(buf)
}

func TestResetPool(t *testing.T) {
	p := NewResetPool(func() *bytes.Buffer { return &bytes.Buffer{} }, (*bytes.Buffer).Reset)

	buf := p.Get()
	buf.WriteString("leftover")
	p.Put(buf)

	require.Zero(t, buf.Len())
	require.Zero(t, p.Get().Len())
}
