package producer

import (
	"context"

	"github.com/wippyai/rawtransfer/buffer"
	"github.com/wippyai/rawtransfer/schema"
)

// Producer fills buf with source and its encoded tree in the given flavor.
type Producer interface {
	Produce(ctx context.Context, buf *buffer.Buffer, source string, flavor schema.Flavor) error
}

// Func adapts a function to Producer.
type Func func(ctx context.Context, buf *buffer.Buffer, source string, flavor schema.Flavor) error

// Produce calls f.
func (f Func) Produce(ctx context.Context, buf *buffer.Buffer, source string, flavor schema.Flavor) error {
	return f(ctx, buf, source, flavor)
}
