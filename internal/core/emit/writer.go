package emit

import (
	"bytes"
	"fmt"
	"strings"
)

// Writer accumulates generated text and remembers every declaration it was
// asked to write.
type Writer struct {
	buf      *bytes.Buffer
	declared []Signature
}

func NewWriter() *Writer {
	return &Writer{buf: &bytes.Buffer{}}
}

// NewWriterOn writes into an existing buffer, used with pooled buffers.
func NewWriterOn(buf *bytes.Buffer) *Writer {
	return &Writer{buf: buf}
}

// Write appends s as is.
func (w *Writer) Write(s string) {
	w.buf.WriteString(s)
}

func (w *Writer) Writef(format string, args ...any) {
	fmt.Fprintf(w.buf, format, args...)
}

// Line appends s and terminates it with a newline unless s already ends in one.
func (w *Writer) Line(s string) {
	w.buf.WriteString(s)
	if !strings.HasSuffix(s, "\n") {
		w.buf.WriteByte('\n')
	}
}

func (w *Writer) Linef(format string, args ...any) {
	w.Line(fmt.Sprintf(format, args...))
}

// Blank appends an empty line.
func (w *Writer) Blank() {
	w.buf.WriteByte('\n')
}

// Declare writes the rendered signature without a terminator and records it.
func (w *Writer) Declare(pass Pass, sig Signature) {
	w.declared = append(w.declared, sig)
	w.buf.WriteString(sig.Render(pass))
}

// Method writes a declaration followed by ";" in the header, or by a braced
// body in the implementation.
func (w *Writer) Method(pass Pass, sig Signature, body func()) {
	w.Declare(pass, sig)
	if pass.IsHeader() {
		w.Line(";")
		return
	}
	w.Line("{")
	if body != nil {
		body()
	}
	w.Line("}")
}

// Inline writes a header-only method with its body. Inline methods are not
// recorded as declarations because the implementation pass never repeats them.
func (w *Writer) Inline(sig Signature, body ...string) {
	w.buf.WriteString(sig.Render(Header))
	w.Line("{")
	for _, line := range body {
		w.Line("    " + line)
	}
	w.Line("}")
}

// Signatures returns the declarations written so far, in order.
func (w *Writer) Signatures() []Signature {
	return w.declared
}

func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

func (w *Writer) String() string {
	return w.buf.String()
}

func (w *Writer) Len() int {
	return w.buf.Len()
}
