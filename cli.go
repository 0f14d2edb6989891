package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"moss/emu/log"
)

type mode byte

const (
	runMode     mode = iota // run a program image
	disasmMode              // print a disassembly listing
	versionMode             // show moss version
)

type (
	CLI struct {
		Run     Run     `cmd:"" help:"Run a 6502 program image."`
		Disasm  Disasm  `cmd:"" help:"Disassemble a 6502 program image."`
		Version Version `cmd:"" help:"Show moss version."`

		Log logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`

		mode mode
	}

	Run struct {
		ImagePath string `arg:"" name:"/path/to/image" help:"${image_help}" type:"existingfile"`

		Org       hexaddr `name:"org" help:"Load address of the image." default:"0x0600"`
		Entry     string  `name:"entry" help:"Entry point. Defaults to the load address."`
		Limit     int64   `name:"limit" help:"Maximum number of CPU cycles to run."`
		Trace      outfile `name:"trace" help:"Write CPU trace log." placeholder:"FILE|stdout|stderr"`
		TraceJSON  bool    `name:"trace-json" help:"Trace in JSON-lines format."`
		SaveConfig bool    `name:"save-config" help:"Save --limit and --trace-json as defaults."`
	}

	Disasm struct {
		ImagePath string `arg:"" name:"/path/to/image" type:"existingfile"`

		Org hexaddr `name:"org" help:"Load address of the image." default:"0x0600"`
	}

	Version struct{}
)

var vars = kong.Vars{
	"image_help": "Raw binary image, loaded at --org and executed.",
	"log_help":   "Enable logging for specified modules.",
}

func parseArgs(args []string) CLI {
	var cfg CLI
	parser, err := kong.New(&cfg,
		kong.Name("moss"),
		kong.Description("Cycle-accurate MOS 6502 emulator."),
		kong.UsageOnError(),
		kong.Help(printHelp),
		vars)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	checkf(err, "failed to parse command line")
	checkf(ctx.Error, "failed to parse command line")

	switch {
	case ctx.Command() == "version":
		cfg.mode = versionMode
	case strings.HasPrefix(ctx.Command(), "disasm"):
		cfg.mode = disasmMode
	default:
		cfg.mode = runMode
	}
	return cfg
}

func printHelp(options kong.HelpOptions, ctx *kong.Context) error {
	if err := kong.DefaultHelpPrinter(options, ctx); err != nil {
		return err
	}
	if strings.HasPrefix(ctx.Command(), "run") {
		var strs []string
		for _, m := range log.ModuleNames() {
			strs = append(strs, "    - "+m)
		}
		fmt.Printf(`
Log modules:
  The --log flag accepts a comma-separated list of modules.

  Valid log modules are:
%s

  As a special case, the following values are accepted:
    - no                     Disable all logging.
    - all                    Enable all logs.
`, strings.Join(strs, "\n"))
	}
	return nil
}

// logModMask accumulates the module mask of a comma-separated --log value.
type logModMask struct {
	mask log.ModuleMask
}

func (m *logModMask) UnmarshalText(text []byte) error {
	for _, modname := range strings.Split(string(text), ",") {
		switch {
		case modname == "no":
			m.mask = 0
		case modname == "all":
			m.mask |= log.ModuleMaskAll
		default:
			mod, found := log.ModuleByName(modname)
			if !found {
				return fmt.Errorf("invalid module name %q", modname)
			}
			m.mask |= mod.Mask()
		}
	}
	return nil
}

// hexaddr is a 16-bit address flag in hex, with an optional 0x or $ prefix.
type hexaddr uint16

func (a *hexaddr) UnmarshalText(text []byte) error {
	s := strings.TrimPrefix(string(text), "$")
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return fmt.Errorf("invalid address %q: %s", string(text), err)
	}
	*a = hexaddr(v)
	return nil
}

func (a hexaddr) addr() uint16 { return uint16(a) }

type outfile struct {
	w    io.Writer
	name string
}

func (f *outfile) UnmarshalText(text []byte) error {
	f.name = string(text)
	switch f.name {
	case "stdout":
		f.w = os.Stdout
	case "stderr":
		f.w = os.Stderr
	default:
		fd, err := os.Create(f.name)
		if err != nil {
			return err
		}
		f.w = fd
	}
	return nil
}

func (f *outfile) String() string { return f.name }

func (f *outfile) Close() error {
	if f.name == "stdout" || f.name == "stderr" {
		return nil
	}
	if c, ok := f.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
