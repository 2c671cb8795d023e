package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/rvkit/rvasm/asm"
	"github.com/rvkit/rvasm/rv32i"
)

func main() {
	var output string
	var listing bool
	var match string
	var verbose bool

	flag.StringVar(&output, "o", "", "Write the flat binary image to a file")
	flag.BoolVar(&listing, "l", false, "Print a section listing")
	flag.StringVar(&match, "m", "", "Match and disassemble one encoded word")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	assembler, err := asm.NewAssembler(rv32i.New())
	if err != nil {
		log.Fatalf("rv32i: %v", err)
	}
	assembler.Verbose = verbose

	if len(match) != 0 {
		word, err := strconv.ParseUint(match, 0, 32)
		if err != nil {
			log.Fatalf("%v: %v", match, err)
		}
		tokens, err := assembler.Matcher().Disassemble(uint32(word), 0)
		if err != nil {
			log.Fatalf("%#08x: %v", word, err)
		}
		fmt.Println(strings.Join(tokens, " "))
		return
	}

	if flag.NArg() != 1 {
		log.Fatalf("%v: expected exactly one source file", os.Args[0])
	}
	source := flag.Arg(0)

	input, err := os.Open(source)
	if err != nil {
		log.Fatalf("%v: %v", source, err)
	}
	defer input.Close()

	res := assembler.Assemble(input)
	if !res.Ok() {
		for _, lineErr := range res.Errors {
			log.Printf("%v: %v", source, lineErr)
		}
		os.Exit(1)
	}

	if listing {
		for _, section := range res.Image.Sections {
			fmt.Printf("%v @ %#08x (%v bytes)\n", section.Name, section.Base, len(section.Data))
			for n := 0; n < len(section.Data); n += 16 {
				end := min(n+16, len(section.Data))
				fmt.Printf("  %08x: % x\n", section.Base+uint32(n), section.Data[n:end])
			}
		}
	}

	if len(output) != 0 {
		if err := os.WriteFile(output, res.Image.Binary(), 0o644); err != nil {
			log.Fatalf("%v: %v", output, err)
		}
	}
}
