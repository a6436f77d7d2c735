// Package streamio provides a pooled zlib writer and an unpooled zlib
// reader wrapper for the object store's loose-object envelopes, grounded on the teacher's own
// streamio package (GetZstdReader/PutZstdReader, GetBufioReader/
// PutBufioReader): compression state is expensive to allocate and the
// store opens a new one per object.
package streamio

import (
	"compress/zlib"
	"io"
	"sync"
)

var zlibWriterPool = sync.Pool{
	New: func() any {
		return zlib.NewWriter(io.Discard)
	},
}

// GetZlibWriter returns a *zlib.Writer managed by a sync.Pool, reset to
// write to w. After use it must be returned via PutZlibWriter, which
// flushes and closes it first.
func GetZlibWriter(w io.Writer) *zlib.Writer {
	zw := zlibWriterPool.Get().(*zlib.Writer)
	zw.Reset(w)
	return zw
}

// PutZlibWriter closes zw (flushing its trailer) and returns it to the
// pool.
func PutZlibWriter(zw *zlib.Writer) {
	_ = zw.Close()
	zlibWriterPool.Put(zw)
}

// GetZlibReader allocates a *zlib.Reader over r. zlib.Reader cannot be
// reset onto arbitrary readers the way zlib.Writer can be re-targeted
// (its dictionary/header state is read once at construction), so unlike
// the writer side this is not pooled — only the decompression scratch
// buffers inside the flate reader benefit from pooling, and the stdlib
// already manages those internally.
func GetZlibReader(r io.Reader) (io.ReadCloser, error) {
	return zlib.NewReader(r)
}

// PutZlibReader closes zr. Provided for symmetry with PutZlibWriter and
// so call sites read the same whether or not the reader becomes poolable
// later.
func PutZlibReader(zr io.ReadCloser) {
	_ = zr.Close()
}
