package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterArgs(t *testing.T) {
	table := []struct {
		args, expected []string
	}{
		{[]string{}, []string{}},
		{[]string{"-N", "10"}, []string{"-N", "10"}},
		{[]string{"-N=10", "-nocheck"}, []string{"-N=10", "-nocheck"}},
		{[]string{"-bogus", "-M", "20"}, []string{"-M", "20"}},
		{[]string{"stray", "--order", "4", "-v"}, []string{"--order", "4", "-v"}},
		{[]string{"-unknown=3", "-nocheck", "-plot", "x.png"},
			[]string{"-nocheck", "-plot", "x.png"}},
	}

	for i, test := range table {
		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		registerFlags(fs)
		assert.Equal(t, test.expected, filterArgs(fs, test.args), "%d", i)
	}
}

func TestConfigOverrides(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	o := registerFlags(fs)
	require.NoError(t, fs.Parse(filterArgs(fs, []string{
		"-N", "50", "-nocheck", "-what", "-D", "2",
	})))

	con, err := o.config(fs)
	require.NoError(t, err)
	assert.Equal(t, 50, con.Sources)
	assert.Equal(t, 1000, con.Targets)
	assert.Equal(t, 2, con.Dim)
	assert.False(t, con.Check)
	assert.Equal(t, 8, con.Order)
}

func TestConfigInvalid(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	o := registerFlags(fs)
	require.NoError(t, fs.Parse([]string{"-order", "0"}))
	_, err := o.config(fs)
	assert.Error(t, err)
}

func TestPoints(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	o := registerFlags(fs)
	require.NoError(t, fs.Parse([]string{"-N", "30", "-M", "40", "-D", "3"}))
	con, err := o.config(fs)
	require.NoError(t, err)

	sources, charges, targets, err := points(con)
	require.NoError(t, err)
	assert.Len(t, sources, 30)
	assert.Len(t, charges, 30)
	assert.Len(t, targets, 40)
	for _, c := range charges {
		assert.True(t, real(c) >= 0 && real(c) < 1)
		assert.True(t, imag(c) >= 0 && imag(c) < 1)
	}
	assert.Len(t, targets[0], 3)
}

func TestProfiledFlushesOnError(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	o := registerFlags(fs)
	require.NoError(t, fs.Parse([]string{
		"-nocheck", "-sources", "does/not/exist.txt",
	}))
	con, err := o.config(fs)
	require.NoError(t, err)

	dir := t.TempDir()
	prof := filepath.Join(dir, "cpu.prof")
	assert.Error(t, profiled(con, false, prof))

	info, err := os.Stat(prof)
	require.NoError(t, err)
	assert.True(t, info.Size() > 0)

	err = profiled(con, false, filepath.Join(dir, "missing", "cpu.prof"))
	assert.Error(t, err)
}
