package producer

import (
	"context"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"

	"github.com/wippyai/rawtransfer/buffer"
	"github.com/wippyai/rawtransfer/errors"
	"github.com/wippyai/rawtransfer/schema"
)

// Export names one guest export the host relies on.
type Export int

const (
	ExportMemory Export = iota
	ExportBase
	ExportProduce
	ExportLayout
)

// DefaultExports are the export names used unless overridden by WithExport.
var DefaultExports = [...]string{
	ExportMemory:  "memory",
	ExportBase:    "rawtransfer_base",
	ExportProduce: "rawtransfer_produce",
	ExportLayout:  "rawtransfer_layout",
}

type config struct {
	exports          [4]string
	name             string
	schema           *schema.Schema
	memoryLimitPages uint32
	wasi             bool
}

// Option configures a Wasm producer.
type Option func(*config)

// WithExport renames the guest export used for e.
func WithExport(e Export, name string) Option {
	return func(c *config) { c.exports[e] = name }
}

// WithModuleName sets the instance name, "rawtransfer-producer" by default.
func WithModuleName(name string) Option {
	return func(c *config) { c.name = name }
}

// WithSchema checks the guest layout against s instead of schema.Default().
func WithSchema(s *schema.Schema) Option {
	return func(c *config) { c.schema = s }
}

// WithMemoryLimitPages caps guest memory in 64KiB pages. 0 keeps the
// wazero default.
func WithMemoryLimitPages(n uint32) Option {
	return func(c *config) { c.memoryLimitPages = n }
}

// WithWASI instantiates wasi_snapshot_preview1 for guests built against it.
func WithWASI() Option {
	return func(c *config) { c.wasi = true }
}

// Wasm runs a producer module. Calls are serialized on one instance.
type Wasm struct {
	runtime wazero.Runtime
	mod     api.Module
	mem     api.Memory
	base    api.Function
	produce api.Function

	mu sync.Mutex
}

var _ Producer = (*Wasm)(nil)

// NewWasm compiles and instantiates a producer module.
func NewWasm(ctx context.Context, wasmBytes []byte, opts ...Option) (*Wasm, error) {
	cfg := config{exports: DefaultExports, name: "rawtransfer-producer"}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.schema == nil {
		cfg.schema = schema.Default()
	}

	rtCfg := wazero.NewRuntimeConfig()
	if cfg.memoryLimitPages > 0 {
		rtCfg = rtCfg.WithMemoryLimitPages(cfg.memoryLimitPages)
	}
	runtime := wazero.NewRuntimeWithConfig(ctx, rtCfg)

	w, err := instantiate(ctx, runtime, wasmBytes, &cfg)
	if err != nil {
		runtime.Close(ctx)
		return nil, err
	}
	return w, nil
}

func instantiate(ctx context.Context, runtime wazero.Runtime, wasmBytes []byte, cfg *config) (*Wasm, error) {
	if cfg.wasi {
		if _, err := wasi_snapshot_preview1.Instantiate(ctx, runtime); err != nil {
			return nil, errors.Wrap(errors.PhaseLoad, errors.KindInstantiation, err, "instantiate WASI")
		}
	}

	compiled, err := runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindInvalidData, err, "compile producer module")
	}
	mod, err := runtime.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName(cfg.name))
	if err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindInstantiation, err, "instantiate producer module")
	}

	w := &Wasm{runtime: runtime, mod: mod}
	if w.mem = mod.ExportedMemory(cfg.exports[ExportMemory]); w.mem == nil {
		return nil, missingExport(cfg.exports[ExportMemory])
	}
	if w.base = mod.ExportedFunction(cfg.exports[ExportBase]); w.base == nil {
		return nil, missingExport(cfg.exports[ExportBase])
	}
	if w.produce = mod.ExportedFunction(cfg.exports[ExportProduce]); w.produce == nil {
		return nil, missingExport(cfg.exports[ExportProduce])
	}

	if layout := mod.ExportedFunction(cfg.exports[ExportLayout]); layout != nil {
		res, err := layout.Call(ctx)
		if err != nil {
			return nil, errors.Wrap(errors.PhaseLoad, errors.KindInstantiation, err, "call layout export")
		}
		if want := cfg.schema.Fingerprint(); len(res) == 0 || res[0] != want {
			var got uint64
			if len(res) > 0 {
				got = res[0]
			}
			Logger().Warn("producer layout mismatch",
				zap.String("module", cfg.name),
				zap.Uint64("want", want),
				zap.Uint64("got", got))
			return nil, errors.LayoutMismatch(errors.PhaseLoad, want, got)
		}
	}

	Logger().Debug("producer instantiated",
		zap.String("module", cfg.name),
		zap.Uint32("memory_bytes", w.mem.Size()))
	return w, nil
}

func missingExport(name string) error {
	return errors.New(errors.PhaseLoad, errors.KindNotFound).
		Detail("producer module does not export %q", name).
		Build()
}

// Produce runs the guest over source and copies its region into buf.
func (w *Wasm) Produce(ctx context.Context, buf *buffer.Buffer, source string, flavor schema.Flavor) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	size := uint32(buf.Len())
	if uint32(len(source)) > buf.DataLimit() {
		return errors.InvalidInput(errors.PhaseProduce, "source of %d bytes does not fit a %d byte buffer", len(source), size)
	}

	res, err := w.base.Call(ctx, api.EncodeU32(size))
	if err != nil {
		return errors.Wrap(errors.PhaseProduce, errors.KindInvalidData, err, "call base export")
	}
	base := api.DecodeU32(res[0])
	if !w.mem.Write(base, []byte(source)) {
		return errors.OutOfBounds(errors.PhaseProduce, nil, int(base), int(w.mem.Size()))
	}

	res, err = w.produce.Call(ctx, api.EncodeU32(base), api.EncodeU32(uint32(len(source))), api.EncodeU32(uint32(flavor)))
	if err != nil {
		return errors.Wrap(errors.PhaseProduce, errors.KindInvalidData, err, "call produce export")
	}
	if status := api.DecodeI32(res[0]); status != 0 {
		return errors.New(errors.PhaseProduce, errors.KindInvalidData).
			Value(status).
			Detail("producer returned status %d", status).
			Build()
	}

	region, ok := w.mem.Read(base, size)
	if !ok {
		return errors.OutOfBounds(errors.PhaseProduce, nil, int(base+size), int(w.mem.Size()))
	}
	copy(buf.Bytes(), region)

	Logger().Debug("producer call",
		zap.Int("buffer", buf.ID()),
		zap.Int("source_bytes", len(source)),
		zap.Stringer("flavor", flavor))
	return nil
}

// Close releases the instance and its runtime.
func (w *Wasm) Close(ctx context.Context) error {
	return w.runtime.Close(ctx)
}
