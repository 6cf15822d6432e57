// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bufio"
	"errors"
	"flag"
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
	"github.com/tebeka/atexit"

	"github.com/ezrec/cowlang/cow"
	"github.com/ezrec/cowlang/emulator"
	cowio "github.com/ezrec/cowlang/io"
	"github.com/ezrec/cowlang/translate"
)

func fatalf(format string, args ...any) {
	translate.Fprintf(os.Stderr, format+"\n", args...)
	atexit.Exit(1)
}

func main() {
	var input string
	var output string
	var script string
	var trace string
	var dump string
	var limit int
	var bytewise bool
	var verbose bool

	flag.StringVar(&input, "i", "-", "Program input")
	flag.StringVar(&output, "o", "-", "Program output")
	flag.StringVar(&script, "s", "", ".star script implementing read_char/read_int/write_char/write_int")
	flag.StringVar(&trace, "trace", "", "Write a JSON step trace to this file")
	flag.StringVar(&dump, "dump", "", "Write the final state as YAML to this file ('-' for stderr)")
	flag.IntVar(&limit, "n", 0, "Step limit (0 for none)")
	flag.BoolVar(&bytewise, "b", false, "8-bit cells, with raw byte I/O")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() == 0 {
		fatalf("%v: no program files", os.Args[0])
	}

	// Logging: stderr, plus the trace file if requested.
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handlers := []slog.Handler{
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}),
	}
	if len(trace) != 0 {
		ouf, err := os.Create(trace)
		if err != nil {
			fatalf("%v: %v", trace, err)
		}
		atexit.Register(func() { ouf.Close() })
		handlers = append(handlers, slog.NewJSONHandler(ouf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	logger := slog.New(slogmulti.Fanout(handlers...))

	// Load the program text.
	files := flag.Args()
	readers := make([]io.Reader, len(files))
	for n, name := range files {
		inf, err := os.Open(name)
		if err != nil {
			fatalf("%v: %v", name, err)
		}
		atexit.Register(func() { inf.Close() })
		readers[n] = inf
	}

	prog, err := cow.Parse(readers...)
	if err != nil {
		fatalf("%v: %v", os.Args[0], err)
	}

	// Capabilities.
	stream := &cowio.Stream{Bytes: bytewise}

	if input == "-" {
		stream.Input = os.Stdin
	} else {
		inf, err := os.Open(input)
		if err != nil {
			fatalf("%v: %v", input, err)
		}
		atexit.Register(func() { inf.Close() })
		stream.Input = inf
	}

	if output == "-" {
		stream.Output = os.Stdout
	} else {
		ouf, err := os.Create(output)
		if err != nil {
			fatalf("%v: %v", output, err)
		}
		bw := bufio.NewWriter(ouf)
		atexit.Register(func() {
			bw.Flush()
			ouf.Close()
		})
		stream.Output = bw
	}

	var capability cowio.Capability = stream
	if len(script) != 0 {
		sc, err := cowio.NewScript(script, nil)
		if err != nil {
			fatalf("%v: %v", script, err)
		}
		sc.Output = stream.Output
		sc.Fallback = stream
		capability = sc
	}

	var opts []cow.Option
	if bytewise {
		opts = append(opts, cow.CellBits(8))
	}

	emu, err := emulator.NewEmulator(prog, capability, capability, opts...)
	if err != nil {
		fatalf("%v: %v", os.Args[0], err)
	}
	emu.Verbose = verbose || len(trace) != 0
	emu.Logger = logger
	emu.Limit = limit

	err = emu.Run()

	if len(dump) != 0 {
		dumpState(emu, dump)
	}

	if err != nil {
		name := os.Args[0]
		var rt *emulator.ErrRuntime
		if errors.As(err, &rt) && rt.Position.Line > 0 {
			name = files[rt.Position.Source]
		}
		fatalf("%v: %v", name, err)
	}

	atexit.Exit(0)
}

func dumpState(emu *emulator.Emulator, dump string) {
	var w io.Writer = os.Stderr
	if dump != "-" {
		ouf, err := os.Create(dump)
		if err != nil {
			fatalf("%v: %v", dump, err)
		}
		defer ouf.Close()
		w = ouf
	}

	err := emu.Dump(w)
	if err != nil {
		fatalf("%v: %v", dump, err)
	}
}
