package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/borsh/codec"
	"github.com/wippyai/borsh/errors"
	"github.com/wippyai/borsh/schema"
)

type options struct {
	schemaPath    string
	typeName      string
	encoding      string
	format        string
	discriminator string
	offset        int
	size          bool
	layout        bool
	encode        bool
	interactive   bool
	verbose       bool
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if err == pflag.ErrHelp {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newFlagSet(opts *options, stderr io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet("borsh-inspect", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&opts.schemaPath, "schema", "s", "", "YAML schema file with root and types")
	fs.StringVarP(&opts.typeName, "type", "t", "", "type name or inline expression (default: schema root)")
	fs.StringVarP(&opts.encoding, "encoding", "e", "hex", "data encoding: "+strings.Join(encodings, ", "))
	fs.StringVarP(&opts.format, "format", "f", "text", "output format: "+strings.Join(formats, ", "))
	fs.StringVarP(&opts.discriminator, "discriminator", "d", "", "expected 8-byte prefix: account:Name, instruction:name, event:Name or hex:...")
	fs.IntVar(&opts.offset, "offset", 0, "byte offset to start decoding at")
	fs.BoolVar(&opts.size, "size", false, "report the resolved byte size")
	fs.BoolVar(&opts.layout, "layout", false, "print size bounds and fixed field offsets of the type and exit")
	fs.BoolVar(&opts.encode, "encode", false, "read a JSON or YAML value and print its encoding")
	fs.BoolVarP(&opts.interactive, "interactive", "i", false, "interactive mode with TUI")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging to stderr")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: borsh-inspect [flags] [data]")
		fmt.Fprintln(stderr, "       borsh-inspect -s schema.yaml -t Vault --encoding base64 <data>")
		fmt.Fprintln(stderr, "       borsh-inspect -t 'struct { a: u8 }' --encode '{\"a\": 1}'")
		fmt.Fprintln(stderr, "Data is read from stdin when omitted.")
		fmt.Fprintln(stderr)
		fs.PrintDefaults()
	}
	return fs
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var opts options
	fs := newFlagSet(&opts, stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 1 {
		return errors.InvalidInput(errors.PhaseLoad, "expected at most one data argument")
	}

	logger, err := newLogger(opts.verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	codec.SetLogger(logger)

	reg, root, err := loadSchema(opts.schemaPath)
	if err != nil {
		return err
	}
	if opts.typeName == "" {
		opts.typeName = root
	}
	typ, err := resolveType(reg, opts.typeName)
	if err != nil {
		return err
	}

	if opts.layout {
		return printLayout(stdout, reg, typ)
	}

	c, err := reg.Build(typ)
	if err != nil {
		return err
	}
	if opts.discriminator != "" {
		prefix, err := parseDiscriminator(opts.discriminator)
		if err != nil {
			return err
		}
		c = codec.Discriminated(prefix, c)
	}

	if opts.interactive {
		if f, ok := stdin.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
			return errors.InvalidInput(errors.PhaseLoad, "interactive mode needs a terminal")
		}
		return runInteractive(c, typ, opts)
	}

	input, err := readArg(fs, stdin)
	if err != nil {
		return err
	}
	logger.Debug("input loaded",
		zap.String("type", typ.String()),
		zap.String("encoding", opts.encoding),
		zap.Int("chars", len(input)))

	if opts.encode {
		return encodeValue(stdout, c, input, opts)
	}
	return decodeValue(stdout, stderr, c, input, opts)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func readArg(fs *pflag.FlagSet, stdin io.Reader) (string, error) {
	if fs.NArg() == 1 && fs.Arg(0) != "-" {
		return fs.Arg(0), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", errors.Load("read stdin", err)
	}
	return string(data), nil
}

func decodeValue(stdout, stderr io.Writer, c codec.Codec[any], input string, opts options) error {
	data, err := decodeInput(input, opts.encoding)
	if err != nil {
		return err
	}
	v, n, err := codec.Deserialize(c, data, opts.offset)
	if err != nil {
		return err
	}
	out, err := render(v, opts.format)
	if err != nil {
		return err
	}
	fmt.Fprint(stdout, out)

	// Machine-readable formats keep stdout clean.
	notes := stdout
	if opts.format != "text" {
		notes = stderr
	}
	if opts.size {
		fmt.Fprintf(notes, "size: %d bytes\n", n)
	}
	if rest := len(data) - opts.offset - n; rest > 0 {
		fmt.Fprintf(notes, "trailing: %d bytes\n", rest)
	}
	return nil
}

func encodeValue(stdout io.Writer, c codec.Codec[any], input string, opts options) error {
	var v any
	if err := yaml.Unmarshal([]byte(input), &v); err != nil {
		return errors.Load("parse value", err)
	}
	data, n, err := codec.Serialize(c, v)
	if err != nil {
		return err
	}
	out, err := encodeOutput(data, opts.encoding)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, out)
	if opts.size {
		fmt.Fprintf(stdout, "size: %d bytes\n", n)
	}
	return nil
}

func printLayout(w io.Writer, reg *schema.Registry, typ *schema.Type) error {
	info, err := schema.NewCalculator(reg).Calculate(typ)
	if err != nil {
		return err
	}
	upper := "unbounded"
	if info.Max != schema.Unbounded {
		upper = fmt.Sprint(info.Max)
	}
	fmt.Fprintf(w, "type: %s\n", typ)
	fmt.Fprintf(w, "size: min %d, max %s\n", info.Min, upper)
	if info.Static() {
		fmt.Fprintln(w, "static: yes")
	}
	if typ.IsRef() {
		if t, ok := reg.Lookup(typ.Ref); ok {
			typ = t
		}
	}
	for _, f := range typ.Fields {
		if off, ok := info.FieldOffs[f.Name]; ok {
			fmt.Fprintf(w, "  %-20s offset %d\n", f.Name, off)
		}
	}
	return nil
}
