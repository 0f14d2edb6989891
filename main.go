package main

import (
	"fmt"
	"os"

	"moss/emu/log"
)

const version = "0.1.0"

func main() {
	cli := parseArgs(os.Args[1:])
	log.EnableDebugModules(cli.Log.mask)

	switch cli.mode {
	case versionMode:
		fmt.Println("moss", version)
	case disasmMode:
		checkf(disasmImage(cli.Disasm), "disassembly failed")
	case runMode:
		cfg := LoadConfigOrDefault()
		checkf(runImage(cli.Run, cfg), "run failed")
	}
}

func check(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "fatal error:")
	fmt.Fprintf(os.Stderr, "\n\t%s\n", err)
	os.Exit(1)
}

func checkf(err error, format string, args ...any) {
	if err == nil {
		return
	}

	fmt.Fprintf(os.Stderr, "fatal error:")
	fmt.Fprintf(os.Stderr, "\n\t%s: %s\n", fmt.Sprintf(format, args...), err)
	os.Exit(1)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "fatal error:")
	fmt.Fprintf(os.Stderr, "\n\t%s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}
