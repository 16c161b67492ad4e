package main

import (
	"bytes"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/rawtransfer"
	"github.com/wippyai/rawtransfer/dump"
	"github.com/wippyai/rawtransfer/errors"
	"github.com/wippyai/rawtransfer/producer"
	"github.com/wippyai/rawtransfer/schema"
)

// Config is the rawast configuration file.
type Config struct {
	Flavor string       `yaml:"flavor"`
	Mode   string       `yaml:"mode"`
	Pretty bool         `yaml:"pretty"`
	Output OutputConfig `yaml:"output"`
	Buffer BufferConfig `yaml:"buffer"`
	Wasm   WasmConfig   `yaml:"wasm"`
	Dump   DumpConfig   `yaml:"dump"`
	Log    LogConfig    `yaml:"log"`
}

// OutputConfig shapes the decoded tree.
type OutputConfig struct {
	Range    bool `yaml:"range"`
	NoParens bool `yaml:"no_parens"`
}

// decodeOptions returns the decoder options the output settings select.
func (o OutputConfig) decodeOptions() []rawtransfer.Option {
	var opts []rawtransfer.Option
	if o.Range {
		opts = append(opts, rawtransfer.WithRange())
	}
	if o.NoParens {
		opts = append(opts, rawtransfer.WithoutParens())
	}
	return opts
}

// BufferConfig sizes the buffer pool.
type BufferConfig struct {
	Size    int `yaml:"size"`
	MaxIdle int `yaml:"max_idle"`
}

// WasmConfig locates a producer module.
type WasmConfig struct {
	Module           string            `yaml:"module"`
	Exports          map[string]string `yaml:"exports"`
	MemoryLimitPages uint32            `yaml:"memory_limit_pages"`
	WASI             bool              `yaml:"wasi"`
}

// DumpConfig controls snapshots written with -save.
type DumpConfig struct {
	Codec string `yaml:"codec"`
}

// LogConfig selects the logger.
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

var modes = map[string]bool{"json": true, "trace": true, "stats": true}

var exportRoles = map[string]producer.Export{
	"memory":  producer.ExportMemory,
	"base":    producer.ExportBase,
	"produce": producer.ExportProduce,
	"layout":  producer.ExportLayout,
}

func defaultConfig() Config {
	return Config{
		Flavor: "plain",
		Mode:   "json",
		Dump:   DumpConfig{Codec: "zstd"},
		Log:    LogConfig{Level: "warn"},
	}
}

// loadConfig reads path over the defaults. Unknown keys are errors.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(errors.PhaseConfig, errors.KindNotFound, err, "read config")
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, errors.Wrap(errors.PhaseConfig, errors.KindInvalidData, err, path)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if _, ok := schema.ParseFlavor(c.Flavor); !ok {
		return errors.InvalidInput(errors.PhaseConfig, "unknown flavor %q", c.Flavor)
	}
	if !modes[c.Mode] {
		return errors.InvalidInput(errors.PhaseConfig, "unknown mode %q (want json, trace or stats)", c.Mode)
	}
	if _, ok := dump.ParseCodec(c.Dump.Codec); !ok {
		return errors.InvalidInput(errors.PhaseConfig, "unknown codec %q", c.Dump.Codec)
	}
	if _, err := zap.ParseAtomicLevel(c.Log.Level); err != nil {
		return errors.InvalidInput(errors.PhaseConfig, "unknown log level %q", c.Log.Level)
	}
	if c.Buffer.Size < 0 || c.Buffer.MaxIdle < 0 {
		return errors.InvalidInput(errors.PhaseConfig, "buffer sizes must not be negative")
	}
	for role := range c.Wasm.Exports {
		if _, ok := exportRoles[role]; !ok {
			return errors.InvalidInput(errors.PhaseConfig, "unknown export role %q", role)
		}
	}
	return nil
}

func (c *Config) flavor() schema.Flavor {
	f, _ := schema.ParseFlavor(c.Flavor)
	return f
}

func (c *Config) codec() dump.Codec {
	codec, _ := dump.ParseCodec(c.Dump.Codec)
	return codec
}

func (c *Config) wasmOptions() []producer.Option {
	var opts []producer.Option
	for role, name := range c.Wasm.Exports {
		opts = append(opts, producer.WithExport(exportRoles[role], name))
	}
	if c.Wasm.MemoryLimitPages > 0 {
		opts = append(opts, producer.WithMemoryLimitPages(c.Wasm.MemoryLimitPages))
	}
	if c.Wasm.WASI {
		opts = append(opts, producer.WithWASI())
	}
	return opts
}

func (c *Config) logger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	if c.Log.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = level
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}
