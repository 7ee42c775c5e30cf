// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
	"golang.org/x/term"

	"github.com/ezrec/asm9/asm"
	"github.com/ezrec/asm9/isa"
	"github.com/ezrec/asm9/translate"
)

var f = translate.From

type ErrDefine string

func (err ErrDefine) Error() string {
	return f("define '%v' is not NAME=VALUE", string(err))
}

type options struct {
	comments bool
	output   string
	defines  []string
	verbose  bool
	dump     bool
	lang     string
	isa      bool
}

// isTerminal returns true if w is a terminal.
func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

func newCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "asm9 [file]",
		Short: "Two-pass assembler for the asm9 9-bit instruction set",
		Long: `Asm9 assembles a source file (or standard input, when the file is
absent or '-') into one 9-bit binary word per line.

When writing to a terminal the listing is annotated with the source text,
unless --comments=false is given.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("comments") {
				opts.comments = opts.output == "-" && isTerminal(cmd.OutOrStdout())
			}
			return opts.run(cmd, args)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&opts.comments, "comments", "c", false, "annotate the listing with the source text")
	flags.StringVarP(&opts.output, "output", "o", "-", "output file")
	flags.StringArrayVarP(&opts.defines, "define", "D", nil, "predefine an equate, as NAME=VALUE")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log each line as it is assembled")
	flags.BoolVar(&opts.dump, "dump", false, "dump the labels and statements to stderr")
	flags.StringVar(&opts.lang, "lang", "", "message language, ie en-US")
	flags.BoolVar(&opts.isa, "isa", false, "print the instruction set and exit")

	return cmd
}

// writeIsa prints the instruction table.
func writeIsa(w io.Writer) (err error) {
	for ins := range isa.Instructions() {
		_, err = fmt.Fprintf(w, "%-9v %d %03b  %v\n", ins.Class, ins.Class.Type(), ins.Opcode, ins.Syntax())
		if err != nil {
			return
		}
	}
	return
}

func (opts *options) run(cmd *cobra.Command, args []string) (err error) {
	if len(opts.lang) != 0 {
		err = translate.SetLanguage(opts.lang)
		if err != nil {
			return
		}
	}

	if opts.isa {
		return writeIsa(cmd.OutOrStdout())
	}

	name := "-"
	if len(args) == 1 {
		name = args[0]
	}

	input := cmd.InOrStdin()
	if name != "-" {
		inf, err := os.Open(name)
		if err != nil {
			return err
		}
		defer inf.Close()
		input = inf
	}

	assembler := &asm.Assembler{Verbose: opts.verbose}
	for _, define := range opts.defines {
		key, value, ok := strings.Cut(define, "=")
		if !ok || len(key) == 0 {
			return ErrDefine(define)
		}
		assembler.Predefine(key, value)
	}

	prog, err := assembler.Parse(input)
	if err != nil {
		return fmt.Errorf("%v: %w", name, err)
	}

	if opts.dump {
		printer := pp.New()
		printer.SetOutput(cmd.ErrOrStderr())
		printer.SetColoringEnabled(isTerminal(cmd.ErrOrStderr()))
		printer.Println(prog.Labels)
		printer.Println(prog.Statements)
	}

	output := cmd.OutOrStdout()
	if opts.output != "-" {
		var ouf *os.File
		ouf, err = os.Create(opts.output)
		if err != nil {
			return
		}
		defer ouf.Close()

		// Remove partial output if we exit on an error.
		written := false
		atexit.Register(func() {
			if !written {
				os.Remove(opts.output)
			}
		})
		defer func() {
			written = err == nil
		}()

		output = ouf
	}

	listing := prog.Listing(opts.comments)
	if len(listing) == 0 {
		return
	}

	w := bufio.NewWriter(output)
	_, err = fmt.Fprintln(w, listing)
	if err != nil {
		return
	}

	err = w.Flush()

	return
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("asm9: ")

	err := newCommand().Execute()
	if err != nil {
		log.Print(err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
