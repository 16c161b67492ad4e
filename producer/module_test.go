package producer_test

// testModule assembles a producer module whose single data segment already
// holds the finished region at offset 0. produce returns status.
type testModule struct {
	image       []byte
	status      int32
	fingerprint uint64
	noLayout    bool
	exportName  string
}

func (m testModule) bytes() []byte {
	out := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

	const i32, i64 = 0x7f, 0x7e
	types := [][]byte{
		funcType([]byte{i32}, []byte{i32}),
		funcType([]byte{i32, i32, i32}, []byte{i32}),
		funcType(nil, []byte{i64}),
	}
	funcs := []byte{0, 1}
	if !m.noLayout {
		funcs = append(funcs, 2)
	}
	out = section(out, 1, vec(types...))
	out = section(out, 3, vec(bytesOf(funcs)...))

	pages := uint32(len(m.image)+0xffff) / 0x10000
	if pages == 0 {
		pages = 1
	}
	out = section(out, 5, vec(append([]byte{0x00}, uleb(pages)...)))

	produce := m.exportName
	if produce == "" {
		produce = "rawtransfer_produce"
	}
	exports := [][]byte{
		export("memory", 0x02, 0),
		export("rawtransfer_base", 0x00, 0),
		export(produce, 0x00, 1),
	}
	if !m.noLayout {
		exports = append(exports, export("rawtransfer_layout", 0x00, 2))
	}
	out = section(out, 7, vec(exports...))

	bodies := [][]byte{
		body(append([]byte{0x41}, sleb(0)...)),
		body(append([]byte{0x41}, sleb(int64(m.status))...)),
	}
	if !m.noLayout {
		bodies = append(bodies, body(append([]byte{0x42}, sleb(int64(m.fingerprint))...)))
	}
	out = section(out, 10, vec(bodies...))

	seg := []byte{0x00, 0x41, 0x00, 0x0b}
	seg = append(seg, uleb(uint32(len(m.image)))...)
	seg = append(seg, m.image...)
	return section(out, 11, vec(seg))
}

func funcType(params, results []byte) []byte {
	b := []byte{0x60}
	b = append(b, uleb(uint32(len(params)))...)
	b = append(b, params...)
	b = append(b, uleb(uint32(len(results)))...)
	return append(b, results...)
}

func export(name string, kind byte, index uint32) []byte {
	b := append(uleb(uint32(len(name))), name...)
	b = append(b, kind)
	return append(b, uleb(index)...)
}

func body(instrs []byte) []byte {
	b := append([]byte{0x00}, instrs...)
	b = append(b, 0x0b)
	return append(uleb(uint32(len(b))), b...)
}

func section(out []byte, id byte, payload []byte) []byte {
	out = append(out, id)
	out = append(out, uleb(uint32(len(payload)))...)
	return append(out, payload...)
}

func vec(items ...[]byte) []byte {
	b := uleb(uint32(len(items)))
	for _, it := range items {
		b = append(b, it...)
	}
	return b
}

func bytesOf(bs []byte) [][]byte {
	out := make([][]byte, len(bs))
	for i, b := range bs {
		out[i] = []byte{b}
	}
	return out
}

func uleb(v uint32) []byte {
	var b []byte
	for {
		c := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			c |= 0x80
		}
		b = append(b, c)
		if v == 0 {
			return b
		}
	}
}

func sleb(v int64) []byte {
	var b []byte
	for {
		c := byte(v & 0x7f)
		v >>= 7
		done := (v == 0 && c&0x40 == 0) || (v == -1 && c&0x40 != 0)
		if !done {
			c |= 0x80
		}
		b = append(b, c)
		if done {
			return b
		}
	}
}
