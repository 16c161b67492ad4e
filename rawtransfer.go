package rawtransfer

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wippyai/rawtransfer/buffer"
	"github.com/wippyai/rawtransfer/deserialize"
	"github.com/wippyai/rawtransfer/errors"
	"github.com/wippyai/rawtransfer/lazy"
	"github.com/wippyai/rawtransfer/producer"
	"github.com/wippyai/rawtransfer/schema"
	"github.com/wippyai/rawtransfer/visitor"
)

// Decoder runs a producer into pooled buffers and decodes the result.
// A Decoder is safe for concurrent use when its producer is.
type Decoder struct {
	producer producer.Producer
	pool     *buffer.Pool
	schema   *schema.Schema
	flavor   schema.Flavor
	decode   []deserialize.Option
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithPool draws buffers from p instead of a private pool.
func WithPool(p *buffer.Pool) Option {
	return func(d *Decoder) { d.pool = p }
}

// WithFlavor selects the output flavor, plain by default.
func WithFlavor(f schema.Flavor) Option {
	return func(d *Decoder) { d.flavor = f }
}

// WithSchema decodes against s instead of schema.Default().
func WithSchema(s *schema.Schema) Option {
	return func(d *Decoder) { d.schema = s }
}

// WithRange adds range pairs to eagerly decoded nodes.
func WithRange() Option {
	return func(d *Decoder) { d.decode = append(d.decode, deserialize.WithRange()) }
}

// WithParent links eagerly decoded nodes to their parents.
func WithParent() Option {
	return func(d *Decoder) { d.decode = append(d.decode, deserialize.WithParent()) }
}

// WithoutParens drops parenthesized expression and type wrappers from
// eagerly decoded trees.
func WithoutParens() Option {
	return func(d *Decoder) { d.decode = append(d.decode, deserialize.WithoutParens()) }
}

// New creates a decoder over p.
func New(p producer.Producer, opts ...Option) *Decoder {
	d := &Decoder{producer: p}
	for _, opt := range opts {
		opt(d)
	}
	if d.pool == nil {
		d.pool = buffer.NewPool()
	}
	if d.schema == nil {
		d.schema = schema.Default()
	}
	return d
}

// Pool returns the pool the decoder draws buffers from.
func (d *Decoder) Pool() *buffer.Pool { return d.pool }

// Flavor returns the output flavor.
func (d *Decoder) Flavor() schema.Flavor { return d.flavor }

// Eager produces source into a buffer and materializes the whole tree. The
// buffer is back in the pool when Eager returns.
func (d *Decoder) Eager(ctx context.Context, source string) (res *deserialize.Result, err error) {
	id := uuid.New()
	began := time.Now()

	buf, err := d.fill(ctx, source)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rerr := d.pool.Release(buf); rerr != nil && err == nil {
			res, err = nil, rerr
		}
	}()

	opts := append([]deserialize.Option{deserialize.WithSchema(d.schema)}, d.decode...)
	sess, err := deserialize.NewSession(buf, source, uint32(len(source)), opts...)
	if err != nil {
		d.logOpenError(err)
		return nil, err
	}
	res, err = sess.Deserialize()
	if err != nil {
		return nil, err
	}
	Logger().Debug("eager decode",
		zap.String("session", id.String()),
		zap.Int("source_bytes", len(source)),
		zap.Int("comments", len(res.Comments)),
		zap.Duration("took", time.Since(began)))
	return res, nil
}

// Lazy produces source into a buffer and returns a session over it. The
// caller owns the session and must Dispose it to return the buffer.
func (d *Decoder) Lazy(ctx context.Context, source string) (*lazy.Session, error) {
	buf, err := d.fill(ctx, source)
	if err != nil {
		return nil, err
	}
	s, err := lazy.Open(buf, source, lazy.WithPool(d.pool), lazy.WithSchema(d.schema))
	if err != nil {
		d.logOpenError(err)
		if rerr := d.pool.Release(buf); rerr != nil {
			Logger().Error("release after failed open", zap.Error(rerr))
		}
		return nil, err
	}
	return s, nil
}

// Walk compiles v, walks the lazy tree of source with it and disposes the
// session. v takes the forms visitor.Compile accepts.
func (d *Decoder) Walk(ctx context.Context, source string, v any) (err error) {
	table, err := visitor.Compile(v, visitor.WithSchema(d.schema))
	if err != nil {
		return err
	}
	s, err := d.Lazy(ctx, source)
	if err != nil {
		return err
	}
	defer func() {
		if derr := s.Dispose(); derr != nil && err == nil {
			err = derr
		}
	}()
	return s.Walk(table)
}

// fill acquires a buffer and runs the producer into it.
func (d *Decoder) fill(ctx context.Context, source string) (*buffer.Buffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	buf, err := d.pool.Acquire()
	if err != nil {
		return nil, err
	}
	if err := d.producer.Produce(ctx, buf, source, d.flavor); err != nil {
		if rerr := d.pool.Release(buf); rerr != nil {
			Logger().Error("release after failed produce", zap.Error(rerr))
		}
		var rterr *errors.Error
		if stderrors.As(err, &rterr) && rterr.Phase == errors.PhaseProduce {
			return nil, err
		}
		return nil, errors.Wrap(errors.PhaseProduce, errors.KindInvalidData, err, "producer failed")
	}
	if isTS := buf.Trailer().IsTS; isTS != (d.flavor == schema.FlavorTyped) {
		if rerr := d.pool.Release(buf); rerr != nil {
			Logger().Error("release after flavor mismatch", zap.Error(rerr))
		}
		return nil, errors.New(errors.PhaseProduce, errors.KindInvalidData).
			Value(isTS).
			Detail("producer wrote is_ts=%v, want %s", isTS, d.flavor).
			Build()
	}
	return buf, nil
}

func (d *Decoder) logOpenError(err error) {
	var rterr *errors.Error
	if stderrors.As(err, &rterr) && rterr.Kind == errors.KindOutOfBounds {
		Logger().Warn("buffer trailer out of bounds", zap.Error(err))
	}
}
