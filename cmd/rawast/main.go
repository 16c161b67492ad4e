package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/rawtransfer"
	"github.com/wippyai/rawtransfer/buffer"
	"github.com/wippyai/rawtransfer/dump"
	"github.com/wippyai/rawtransfer/lazy"
	"github.com/wippyai/rawtransfer/producer"
	"github.com/wippyai/rawtransfer/schema"
	"github.com/wippyai/rawtransfer/visitor"
)

func main() {
	var (
		configFile  = flag.String("config", "", "YAML configuration file")
		snapFile    = flag.String("snapshot", "", "Decode a buffer snapshot")
		wasmFile    = flag.String("wasm", "", "Producer module (overrides wasm.module)")
		sourceFile  = flag.String("source", "", "Source file to run through the producer module")
		flavor      = flag.String("flavor", "", "Output flavor: plain or typed")
		mode        = flag.String("mode", "", "Output: json, trace or stats")
		pretty      = flag.Bool("pretty", false, "Indent JSON output")
		ranges      = flag.Bool("range", false, "Add a [start, end] range to every node")
		noParens    = flag.Bool("no-parens", false, "Drop parenthesized expression wrappers")
		save        = flag.String("save", "", "Write the produced buffer to a snapshot file")
		codec       = flag.String("codec", "", "Snapshot codec for -save: none, zstd or lz4")
		logLevel    = flag.String("log", "", "Log level")
		interactive = flag.Bool("i", false, "Interactive tree browser")
	)
	flag.Parse()

	cfg, err := loadConfig(*configFile)
	if err != nil {
		fatal(err)
	}
	overrideString(&cfg.Flavor, *flavor)
	overrideString(&cfg.Mode, *mode)
	overrideString(&cfg.Wasm.Module, *wasmFile)
	overrideString(&cfg.Dump.Codec, *codec)
	overrideString(&cfg.Log.Level, *logLevel)
	cfg.Pretty = cfg.Pretty || *pretty
	cfg.Output.Range = cfg.Output.Range || *ranges
	cfg.Output.NoParens = cfg.Output.NoParens || *noParens
	if err := cfg.validate(); err != nil {
		fatal(err)
	}

	if *snapFile == "" && (cfg.Wasm.Module == "" || *sourceFile == "") {
		fmt.Fprintln(os.Stderr, "Usage: rawast -snapshot <file.rts> [-mode json|trace|stats] [-flavor plain|typed]")
		fmt.Fprintln(os.Stderr, "       rawast -wasm <producer.wasm> -source <file.js> [-save <file.rts>]")
		fmt.Fprintln(os.Stderr, "       rawast -snapshot <file.rts> -i  (interactive mode)")
		os.Exit(1)
	}

	log, err := cfg.logger()
	if err != nil {
		fatal(err)
	}
	defer log.Sync()
	setLoggers(log)

	if err := run(context.Background(), &cfg, *snapFile, *sourceFile, *save, *interactive); err != nil {
		fatal(err)
	}
}

func overrideString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func run(ctx context.Context, cfg *Config, snapFile, sourceFile, save string, interactive bool) error {
	prod, source, closeFn, err := openProducer(ctx, cfg, snapFile, sourceFile)
	if err != nil {
		return err
	}
	defer closeFn()

	if save != "" {
		prod = capturing(prod, save, cfg.codec())
	}

	var poolOpts []buffer.Option
	if cfg.Buffer.Size > 0 {
		poolOpts = append(poolOpts, buffer.WithSize(cfg.Buffer.Size))
	}
	if cfg.Buffer.MaxIdle > 0 {
		poolOpts = append(poolOpts, buffer.WithMaxIdle(cfg.Buffer.MaxIdle))
	}
	opts := append([]rawtransfer.Option{
		rawtransfer.WithPool(buffer.NewPool(poolOpts...)),
		rawtransfer.WithFlavor(cfg.flavor()),
	}, cfg.Output.decodeOptions()...)
	dec := rawtransfer.New(prod, opts...)

	if interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("interactive mode needs a terminal")
		}
		return runInteractive(ctx, dec, source)
	}

	color := term.IsTerminal(int(os.Stdout.Fd()))
	switch cfg.Mode {
	case "trace":
		return printTrace(ctx, os.Stdout, dec, source, color)
	case "stats":
		return printStats(ctx, os.Stdout, dec, source)
	}
	return printJSON(ctx, os.Stdout, dec, source, cfg.Pretty)
}

// openProducer returns the producer chosen by the flags and the source text
// it will be asked for.
func openProducer(ctx context.Context, cfg *Config, snapFile, sourceFile string) (producer.Producer, string, func(), error) {
	if snapFile != "" {
		snap, err := dump.Load(snapFile)
		if err != nil {
			return nil, "", nil, err
		}
		if snap.Trailer.IsTS {
			cfg.Flavor = schema.FlavorTyped.String()
		} else {
			cfg.Flavor = schema.FlavorPlain.String()
		}
		return snap, snap.Source, func() {}, nil
	}

	src, err := os.ReadFile(sourceFile)
	if err != nil {
		return nil, "", nil, fmt.Errorf("read source: %w", err)
	}
	module, err := os.ReadFile(cfg.Wasm.Module)
	if err != nil {
		return nil, "", nil, fmt.Errorf("read producer module: %w", err)
	}
	w, err := producer.NewWasm(ctx, module, cfg.wasmOptions()...)
	if err != nil {
		return nil, "", nil, err
	}
	return w, string(src), func() { w.Close(ctx) }, nil
}

// capturing wraps p so every produced buffer is also written to path.
func capturing(p producer.Producer, path string, codec dump.Codec) producer.Producer {
	return producer.Func(func(ctx context.Context, buf *buffer.Buffer, source string, f schema.Flavor) error {
		if err := p.Produce(ctx, buf, source, f); err != nil {
			return err
		}
		snap, err := dump.Capture(buf, source)
		if err != nil {
			return err
		}
		return dump.Save(path, snap, codec)
	})
}

func printJSON(ctx context.Context, w io.Writer, dec *rawtransfer.Decoder, source string, pretty bool) error {
	res, err := dec.Eager(ctx, source)
	if err != nil {
		return err
	}
	out, err := json.Marshal(map[string]any{
		"program":  res.Program,
		"comments": res.Comments,
		"module":   res.Module,
		"errors":   res.Errors,
	})
	if err != nil {
		return err
	}
	if pretty {
		var b bytes.Buffer
		if err := json.Indent(&b, out, "", "  "); err != nil {
			return err
		}
		out = b.Bytes()
	}
	_, err = fmt.Fprintf(w, "%s\n", out)
	return err
}

var (
	traceType = lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB"))
	traceSpan = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	traceName = lipgloss.NewStyle().Foreground(lipgloss.Color("#98FB98"))
)

// traceVisitor prints one indented line per node on enter.
func traceVisitor(w io.Writer, color bool) visitor.Map {
	depth := 0
	style := func(s lipgloss.Style, v string) string {
		if color {
			return s.Render(v)
		}
		return v
	}
	enter := func(n visitor.Node) {
		start, end := n.Span()
		line := strings.Repeat("  ", depth) + style(traceType, n.TypeName()) + " " +
			style(traceSpan, fmt.Sprintf("%d-%d", start, end))
		if name, ok := n.Get("name").(string); ok {
			line += " " + style(traceName, name)
		}
		fmt.Fprintln(w, line)
		depth++
	}
	m := visitor.Map{}
	for _, name := range schema.Default().NodeTypes() {
		m[name] = enter
		m[name+visitor.ExitSuffix] = func(visitor.Node) { depth-- }
	}
	return m
}

func printTrace(ctx context.Context, w io.Writer, dec *rawtransfer.Decoder, source string, color bool) error {
	return dec.Walk(ctx, source, traceVisitor(w, color))
}

func printStats(ctx context.Context, w io.Writer, dec *rawtransfer.Decoder, source string) error {
	counts := make(map[string]int)
	m := visitor.Map{}
	for _, name := range schema.Default().NodeTypes() {
		m[name] = func(n visitor.Node) { counts[n.TypeName()]++ }
	}
	table, err := visitor.Compile(m)
	if err != nil {
		return err
	}

	s, err := dec.Lazy(ctx, source)
	if err != nil {
		return err
	}
	err = s.Walk(table)
	views := s.Views()
	comments := s.Comments().Len()
	if derr := s.Dispose(); err == nil {
		err = derr
	}
	if err != nil {
		return err
	}

	names := make([]string, 0, len(counts))
	total := 0
	for name, n := range counts {
		names = append(names, name)
		total += n
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	for _, name := range names {
		fmt.Fprintf(w, "%8d  %s\n", counts[name], name)
	}
	st := dec.Pool().Stats()
	fmt.Fprintf(w, "%8d  nodes, %d views, %d comments\n", total, views, comments)
	fmt.Fprintf(w, "pool: %d allocated, %d reused, %d released\n", st.Allocated, st.Reused, st.Released)
	return nil
}

func setLoggers(l *zap.Logger) {
	rawtransfer.SetLogger(l)
	buffer.SetLogger(l.Named("buffer"))
	lazy.SetLogger(l.Named("lazy"))
	producer.SetLogger(l.Named("producer"))
}
