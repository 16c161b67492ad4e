// Package rawtransfer decodes the binary syntax tree a raw-transfer producer
// writes into a fixed-capacity buffer.
//
// # Architecture Overview
//
//	rawtransfer/         Decoder: acquire a buffer, produce, decode, release
//	├── buffer/          Typed buffer view, trailer and buffer pool
//	├── schema/          Layout schema, discriminant tables, niches, node ids
//	├── deserialize/     Eager decoding into ast records, plain and typed flavors
//	├── ast/             Materialized nodes and their JSON form
//	├── visitor/         Visitor compilation into a dense dispatch table
//	├── lazy/            Node views and the lazy walker
//	├── producer/        Producer contract and the wazero-hosted adapter
//	├── dump/            Compressed buffer snapshots
//	└── errors/          Structured error types
//
// # Quick Start
//
// Decode eagerly:
//
//	dec := rawtransfer.New(prod)
//	res, err := dec.Eager(ctx, source)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, _ := json.Marshal(res.Program)
//
// Walk lazily, building views only for visited node types:
//
//	err := dec.Walk(ctx, source, visitor.Map{
//	    "Identifier": func(n visitor.Node) { fmt.Println(n.Get("name")) },
//	})
//
// # Flavors
//
// The plain flavor is the JavaScript ESTree shape. The typed flavor adds
// TypeScript members, turns a hashbang line into a leading Shebang comment,
// starts the program at its first statement and folds dotted namespace
// chains into one declaration.
package rawtransfer
