package xio

import (
	"io"
)

// NewResponseWriteCloser adapts w to an io.WriteCloser. Close only closes w when it is a closer,
// so an http.ResponseWriter can be handed to encoders that insist on closing their sink.
func NewResponseWriteCloser(w io.Writer) io.WriteCloser {
	return &responseWriteCloser{
		Writer: w,
	}
}

type responseWriteCloser struct {
	io.Writer
}

func (rwc *responseWriteCloser) Close() error {
	if closer, ok := rwc.Writer.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
