// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"errors"
	"fmt"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/asm9/internal"
	"github.com/ezrec/asm9/isa"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":     "0",
	"WORD_BITS":  fmt.Sprintf("%v", isa.WORD_BITS),
	"BRANCH_MIN": fmt.Sprintf("%v", isa.BRANCH_MIN),
	"BRANCH_MAX": fmt.Sprintf("%v", isa.BRANCH_MAX),
}

// Predefine defines a new equate or redefines an existing one. Predefines
// survive across assemblies.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// resetEquates restores the system equates and predefines.
func (asm *Assembler) resetEquates() {
	asm.Equate = maps.Collect(internal.IterSeq2Concat(maps.All(sysEquate), maps.All(asm.predefine)))
}

// parseNumber parses a decimal, 0x hex or 0b binary literal. Literals too
// large for 32 bits are clamped, and left for the field check to reject.
func parseNumber(word string) (value int, err error) {
	base := 10
	lower := strings.ToLower(strings.TrimPrefix(word, "-"))
	if strings.HasPrefix(lower, "0x") || strings.HasPrefix(lower, "0b") {
		base = 0
	}

	v64, err := strconv.ParseInt(word, base, 32)
	if errors.Is(err, strconv.ErrRange) {
		err = nil
	}
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = int(v64)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{Name: "asm9"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		v64, perr := strconv.ParseInt(str, 0, 64)
		if perr != nil {
			// Registers, labels and the like.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}

	prog := "rc=" + expr + "\n"
	dict, serr := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if serr != nil {
		if asm.Verbose {
			log.Printf("$(%v): %v", expr, serr)
		}
		err = ErrParseExpression(expr)
		return
	}

	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	return
}

var (
	exprRe = regexp.MustCompile(`\$\([^\$]*\)`)
	wordRe = regexp.MustCompile(`(?:^|[^0-9A-Za-z_.])[A-Za-z_.][0-9A-Za-z_.]*`)
)

// expand evaluates $(...) expressions, then replaces equate names.
func (asm *Assembler) expand(text string) (out string, err error) {
	out, err = asm.evaluate(text)
	if err != nil {
		return
	}

	out = asm.substitute(out)

	return
}

// evaluate replaces each $(...) expression with its decimal value.
func (asm *Assembler) evaluate(text string) (out string, err error) {
	out = exprRe.ReplaceAllStringFunc(text, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			if err == nil {
				err = _err
			}
			return str
		}
		return strconv.FormatInt(value, 10)
	})

	return
}

// substitute replaces every equate name in text with its value.
func (asm *Assembler) substitute(text string) (out string) {
	out = wordRe.ReplaceAllStringFunc(text, func(word string) string {
		lead := ""
		if c := word[0]; c != '_' && c != '.' && !('A' <= c && c <= 'Z') && !('a' <= c && c <= 'z') {
			lead, word = word[:1], word[1:]
		}
		equate, ok := asm.Equate[word]
		if ok {
			word = equate
		}
		return lead + word
	})

	return
}

// equate handles a .equ directive.
func (asm *Assembler) equate(line *Line) (err error) {
	args, err := asm.expand(line.args)
	if err != nil {
		return
	}

	words := strings.Fields(args)
	if len(words) != 2 {
		err = ErrEquateSyntax
		return
	}

	// The name was substituted by expand() if it already exists.
	name := line.Operands[0]
	_, ok := asm.Equate[name]
	if ok {
		err = ErrEquateDuplicate
		return
	}

	asm.Equate[name] = words[1]
	line.Operands = []string{name, words[1]}

	return
}
