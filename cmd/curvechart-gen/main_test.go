package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~whereswaldon/curvechart/signals"
)

func TestWriteTrace(t *testing.T) {
	sigs, err := signals.Parse("saw:4s,sine:4s", 0)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeHeadings(&buf, sigs))
	require.NoError(t, writeRow(&buf, sigs, 2*time.Second))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "elapsed (s), saw, sine", lines[0])
	assert.Equal(t, "2.000, 0.000000, 0.000000", lines[1])
}

func TestRootRejectsBadFlags(t *testing.T) {
	for _, args := range [][]string{
		{"--signals", "square", "--limit", "1"},
		{"--interval", "0s"},
		{"--log-level", "loud"},
	} {
		cmd := newRootCmd()
		cmd.SetArgs(args)
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		assert.Error(t, cmd.Execute(), "args %v", args)
	}
}
