package dump

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Codec selects payload compression.
type Codec uint8

const (
	CodecNone Codec = iota
	CodecZstd
	CodecLZ4
)

var codecNames = [...]string{
	CodecNone: "none",
	CodecZstd: "zstd",
	CodecLZ4:  "lz4",
}

func (c Codec) String() string {
	if int(c) < len(codecNames) {
		return codecNames[c]
	}
	return fmt.Sprintf("codec(%d)", c)
}

// ParseCodec maps a codec name to its value.
func ParseCodec(name string) (Codec, bool) {
	for i, n := range codecNames {
		if n == name {
			return Codec(i), true
		}
	}
	return 0, false
}

var zstdEncoderPool = sync.Pool{
	New: func() any {
		enc, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedDefault),
			zstd.WithEncoderCRC(false),
		)
		if err != nil {
			panic(fmt.Sprintf("zstd encoder: %v", err))
		}
		return enc
	},
}

var zstdDecoderPool = sync.Pool{
	New: func() any {
		dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
		if err != nil {
			panic(fmt.Sprintf("zstd decoder: %v", err))
		}
		return dec
	},
}

var lz4CompressorPool = sync.Pool{
	New: func() any { return &lz4.Compressor{} },
}

// compress returns the payload and the codec it was written with. Input
// that lz4 cannot shrink is stored uncompressed.
func compress(c Codec, data []byte) ([]byte, Codec, error) {
	switch c {
	case CodecNone:
		return data, CodecNone, nil
	case CodecZstd:
		enc := zstdEncoderPool.Get().(*zstd.Encoder)
		defer zstdEncoderPool.Put(enc)
		return enc.EncodeAll(data, nil), CodecZstd, nil
	case CodecLZ4:
		if len(data) == 0 {
			return nil, CodecLZ4, nil
		}
		lc := lz4CompressorPool.Get().(*lz4.Compressor)
		defer lz4CompressorPool.Put(lc)
		dst := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lc.CompressBlock(data, dst)
		if err != nil {
			return nil, c, err
		}
		if n == 0 {
			return data, CodecNone, nil
		}
		return dst[:n], CodecLZ4, nil
	}
	return nil, c, fmt.Errorf("unknown codec %d", c)
}

// decompress expands payload into exactly size bytes.
func decompress(c Codec, payload []byte, size int) ([]byte, error) {
	switch c {
	case CodecNone:
		return payload, nil
	case CodecZstd:
		dec := zstdDecoderPool.Get().(*zstd.Decoder)
		defer zstdDecoderPool.Put(dec)
		return dec.DecodeAll(payload, make([]byte, 0, size))
	case CodecLZ4:
		out := make([]byte, size)
		if size == 0 {
			return out, nil
		}
		n, err := lz4.UncompressBlock(payload, out)
		if err != nil {
			return nil, err
		}
		return out[:n], nil
	}
	return nil, fmt.Errorf("unknown codec %d", c)
}
