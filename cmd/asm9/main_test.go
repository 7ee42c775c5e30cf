package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/asm9/asm"
)

func runCommand(stdin string, args ...string) (stdout string, stderr string, err error) {
	cmd := newCommand()

	// A nil argument list makes cobra fall back to os.Args.
	if args == nil {
		args = []string{}
	}

	var out, errOut bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	err = cmd.Execute()

	stdout = out.String()
	stderr = errOut.String()
	return
}

func TestCommandStdin(t *testing.T) {
	assert := assert.New(t)

	stdout, _, err := runCommand("MOV R0, #1\nADD R0, #1")
	assert.NoError(err)
	assert.Equal("100000001\n100100001\n", stdout)

	stdout, _, err = runCommand("HALT", "-")
	assert.NoError(err)
	assert.Equal("111100000\n", stdout)

	stdout, _, err = runCommand("; nothing")
	assert.NoError(err)
	assert.Equal("", stdout)
}

func TestCommandFile(t *testing.T) {
	assert := assert.New(t)

	stdout, _, err := runCommand("", "testdata/int2float.s")
	assert.NoError(err)
	assert.Len(strings.Split(strings.TrimSpace(stdout), "\n"), 15)
	assert.True(strings.HasPrefix(stdout, "100000001\n"))
}

func TestCommandComments(t *testing.T) {
	assert := assert.New(t)

	stdout, _, err := runCommand("start:\nHALT ; stop", "-c")
	assert.NoError(err)
	assert.Equal("start: ; Label\n111100000 ; HALT ; stop\n", stdout)

	stdout, _, err = runCommand("start:\nHALT", "--comments=false")
	assert.NoError(err)
	assert.Equal("111100000\n", stdout)
}

func TestCommandDefine(t *testing.T) {
	assert := assert.New(t)

	stdout, _, err := runCommand("MOV R0, #ONE\nSTR SRC, ONE", "-D", "ONE=1", "--define", "SRC=R2")
	assert.NoError(err)
	assert.Equal("100000001\n011101001\n", stdout)

	_, _, err = runCommand("HALT", "-D", "ONE")
	var de ErrDefine
	assert.True(errors.As(err, &de))

	_, _, err = runCommand("HALT", "-D", "=1")
	assert.True(errors.As(err, &de))
}

func TestCommandOutput(t *testing.T) {
	assert := assert.New(t)

	name := filepath.Join(t.TempDir(), "out.bin")

	stdout, _, err := runCommand("BX R7", "-o", name)
	assert.NoError(err)
	assert.Equal("", stdout)

	data, err := os.ReadFile(name)
	assert.NoError(err)
	assert.Equal("101111100\n", string(data))

	_, _, err = runCommand("HALT", "-o", filepath.Join(t.TempDir(), "missing", "out.bin"))
	assert.Error(err)
}

func TestCommandErrors(t *testing.T) {
	assert := assert.New(t)

	_, _, err := runCommand("", "testdata/float2int.s")
	if assert.Error(err) {
		assert.Contains(err.Error(), "testdata/float2int.s")
		var el *asm.ErrLine
		if assert.True(errors.As(err, &el)) {
			assert.Equal(8, el.LineNo)
		}
	}

	_, _, err = runCommand("", "testdata/no-such-file.s")
	assert.True(errors.Is(err, os.ErrNotExist))

	_, _, err = runCommand("", "a.s", "b.s")
	assert.Error(err)

	_, _, err = runCommand("HALT", "--lang", "not a language!")
	assert.Error(err)
}

func TestCommandIsa(t *testing.T) {
	assert := assert.New(t)

	stdout, _, err := runCommand("", "--isa")
	assert.NoError(err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.Len(lines, 22)
	assert.Equal("immediate 1 000  MOV Rd, #imm", lines[0])
	assert.Contains(stdout, "branch    1 010  B label\n")
}

func TestCommandDump(t *testing.T) {
	assert := assert.New(t)

	_, stderr, err := runCommand("", "--dump", "--lang", "en-US", "testdata/int2float.s")
	assert.NoError(err)
	assert.Contains(stderr, ".L_end_loop_P1")
	assert.Contains(stderr, "LDRB")
}
