package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GetPageSpeed/recheck/diagnostics"
)

func TestAttackString(t *testing.T) {
	a := diagnostics.Attack{
		Prefix:      []rune("ab"),
		Pump:        []rune("x"),
		Suffix:      []rune("!"),
		RepeatCount: 3,
	}
	assert.Equal(t, "abxxx!", attackString(a))
}

func TestCollectPatternsFromListFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "patterns-*.txt")
	require.NoError(t, err)
	_, err = f.WriteString("^a+$\n\n^b+$\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	opts := &Options{Pattern: "^c+$", List: []string{f.Name()}}
	patterns, err := collectPatterns(opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"^c+$", "^a+$", "^b+$"}, patterns)
}
