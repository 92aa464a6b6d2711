package jsonlutil

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pair struct {
	A string `json:"a"`
	N int    `json:"n"`
}

func TestStartWritesOneLinePerValue(t *testing.T) {
	var b strings.Builder
	in, done := Start(&b, 1, func(n int) any { return pair{A: "C5'", N: n} }, func(error) bool { return false })
	in <- 1
	in <- 2
	close(in)
	require.NoError(t, <-done)
	assert.Equal(t, `{"a":"C5'","n":1}`+"\n"+`{"a":"C5'","n":2}`+"\n", b.String())
}

type failWriter struct{ err error }

func (f failWriter) Write([]byte) (int, error) { return 0, f.err }

func TestStartDrainsAfterError(t *testing.T) {
	boom := errors.New("boom")
	in, done := Start(failWriter{boom}, 1, func(s string) any { return strings.Repeat(s, 70<<10) }, func(error) bool { return false })
	for i := 0; i < 10; i++ {
		in <- "x"
	}
	close(in)
	assert.ErrorIs(t, <-done, boom)
}

func TestStartSuppressesBrokenPipe(t *testing.T) {
	in, done := Start(failWriter{io.ErrClosedPipe}, 1, func(s string) any { return s },
		func(err error) bool { return errors.Is(err, io.ErrClosedPipe) })
	in <- "x"
	close(in)
	assert.NoError(t, <-done)
}
