// Package buffer provides the fixed-capacity transfer buffer, its typed views
// and the pool that manages buffer lifecycles.
//
// A Buffer holds exactly one encoded tree at a time. The source text occupies
// bytes [0, sourceByteLen) and the last TrailerSize bytes hold the Trailer.
// Acquire a buffer from a Pool, let a producer fill it, decode, then Release:
//
//	pool := buffer.NewPool(buffer.WithSize(64 << 20))
//	buf, err := pool.Acquire()
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(buf)
//
// Release bumps the buffer generation. Anything still referring to the old
// contents must not be used afterwards.
package buffer
