//go:build !windows

package main

import (
	"bytes"
	"testing"
)

// execute runs a fresh root command with args and returns its combined
// cobra output and error.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	cmd := newRootCmd()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}
