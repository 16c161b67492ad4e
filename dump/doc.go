// Package dump stores transfer buffers on disk.
//
// A snapshot keeps the used prefix of a buffer (the source text followed by
// the encoded tree) and its trailer. The file is a fixed header followed by
// the prefix, optionally compressed with zstd or lz4, and guarded by an
// xxhash checksum of the uncompressed bytes.
//
// Header, little-endian:
//
//	0  magic "RTSN"
//	4  version u8
//	5  codec u8
//	6  reserved u16
//	8  source length u32
//	12 data length u32
//	16 root u32
//	20 flavor u8, 3 bytes padding
//	24 fingerprint u64
//	32 checksum u64
//	40 payload
//
// A Snapshot is also a producer.Producer that replays itself into a buffer.
package dump
