// Package producer defines how transfer buffers get filled.
//
// A Producer writes the source text and the encoded tree of one parse into
// a buffer and stamps the trailer. Func adapts a plain function. Wasm hosts
// a producer compiled to WebAssembly with wazero: the guest parses inside
// its linear memory and the host copies the finished region out.
//
// A Wasm guest exports:
//
//	memory                                          linear memory
//	rawtransfer_base(size i32) -> i32               start of a size-byte region
//	rawtransfer_produce(base, len, flavor i32) -> i32  0 on success
//	rawtransfer_layout() -> i64                     layout fingerprint (optional)
//
// The host writes the source at base before calling produce. Positions in
// the finished region are relative to base.
package producer
