// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/ezrec/accvm/emulator"
	"github.com/ezrec/accvm/executable"
	"github.com/ezrec/accvm/translate"
)

func main() {
	var compile string
	var load string
	var write string
	var width uint
	var store bool
	var input string
	var output string
	var prompt string
	var depth int
	var verbose bool
	var lang string

	flag.StringVar(&compile, "c", "", ".asm file to compile")
	flag.StringVar(&load, "l", "", "executable file to load")
	flag.StringVar(&write, "w", "", "executable file to write")
	flag.UintVar(&width, "b", 8, "Word width in bits")
	flag.BoolVar(&store, "s", false, "Store executable only, do not execute")
	flag.StringVar(&input, "i", "-", "Tape input")
	flag.StringVar(&output, "o", "-", "Tape output")
	flag.StringVar(&prompt, "p", "", "Prompt written before each tape input (default \"? \" on a terminal)")
	flag.IntVar(&depth, "q", 0, "Tape output queue depth, 0 for unbuffered")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.StringVar(&lang, "L", "", "Message locale, such as en-US")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(lang) != 0 {
		translate.SetLocales(lang)
	}

	var emu *emulator.Emulator
	var err error

	switch {
	case len(compile) != 0 && len(load) != 0:
		log.Fatalf("%v: -c and -l are exclusive", os.Args[0])
	case len(compile) != 0:
		// Compile a new instruction stream.
		source, err := os.ReadFile(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		emu, err = emulator.NewEmulator(width)
		if err != nil {
			log.Fatal(err)
		}
		emu.Verbose = verbose
		err = emu.Assemble(string(source))
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	case len(load) != 0:
		exe, err := executable.Load(os.DirFS(filepath.Dir(load)), filepath.Base(load))
		if err != nil {
			log.Fatalf("%v: %v", load, err)
		}
		if verbose {
			log.Printf("%v", exe)
		}
		emu, err = emulator.NewEmulator(exe.Width)
		if err != nil {
			log.Fatal(err)
		}
		err = emu.Load(exe.Instructions)
		if err != nil {
			log.Fatalf("%v: %v", load, err)
		}
	default:
		log.Fatalf("%v: one of -c or -l is required", os.Args[0])
	}

	if len(write) != 0 {
		name := filepath.Base(compile)
		if len(compile) == 0 {
			name = filepath.Base(load)
		}
		exe, err := executable.New(name, emu.Cpu.Width, emu.Program.Instructions())
		if err == nil {
			err = exe.Store(write)
		}
		if err != nil {
			log.Fatalf("%v: %v", write, err)
		}
	}

	if store {
		return
	}

	emu.Verbose = verbose
	emu.Tape.Prompt = prompt

	if input == "-" {
		emu.Tape.Input = os.Stdin
		if len(prompt) == 0 && isTerminal(os.Stdin) {
			emu.Tape.Prompt = "? "
		}
	} else {
		inf, err := os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		defer inf.Close()
		emu.Tape.Input = inf
	}

	if output == "-" {
		emu.Tape.Output = os.Stdout
	} else {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
		emu.Tape.Output = ouf
	}

	if depth > 0 {
		emu.Buffered(depth)
	}

	err = emu.Run()
	if err != nil {
		log.Fatal(err)
	}
}
