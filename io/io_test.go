package io

import (
	"bytes"
	"strings"
	"testing"

	"github.com/phil-mansfield/butterfly/analyze"
	"github.com/phil-mansfield/butterfly/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadButterflyConfig(t *testing.T) {
	con, err := ReadButterflyConfig("testdata/butterfly.gcfg")
	require.NoError(t, err)

	assert.Equal(t, 250, con.Sources)
	assert.Equal(t, 300, con.Targets)
	assert.Equal(t, 2, con.Dim)
	assert.Equal(t, 6, con.Order)
	assert.False(t, con.Check)
	assert.Equal(t, "out.png", con.PlotFile)

	// Defaults survive.
	assert.Equal(t, 16, con.LeafSize)
	assert.Equal(t, 0.5, con.MaxSpread)
	assert.Equal(t, 1.0, con.Scale)
}

func TestReadButterflyConfigErrors(t *testing.T) {
	_, err := ReadButterflyConfig("testdata/bad.gcfg")
	assert.Error(t, err)
	_, err = ReadButterflyConfig("testdata/does_not_exist.gcfg")
	assert.Error(t, err)
}

func TestCheckInit(t *testing.T) {
	table := []struct {
		edit  func(con *ButterflyConfig)
		valid bool
	}{
		{func(con *ButterflyConfig) {}, true},
		{func(con *ButterflyConfig) { con.Sources = 0 }, false},
		{func(con *ButterflyConfig) { con.Sources, con.SourceFile = 0, "x" }, true},
		{func(con *ButterflyConfig) { con.Targets = -1 }, false},
		{func(con *ButterflyConfig) { con.LeafSize = 0 }, false},
		{func(con *ButterflyConfig) { con.Order = 0 }, false},
		{func(con *ButterflyConfig) { con.Decay = -1 }, false},
		{func(con *ButterflyConfig) { con.Workers = -2 }, false},
	}

	for i, test := range table {
		con := DefaultButterflyWrapper().Butterfly
		test.edit(&con)
		err := con.CheckInit()
		assert.Equal(t, test.valid, err == nil, "%d) %v", i, err)
	}
}

func TestExampleFile(t *testing.T) {
	assert.True(t, strings.HasPrefix(ExampleButterflyFile, "[Butterfly]"))
}

func TestReadPoints(t *testing.T) {
	sources, charges, err := ReadSources("testdata/sources.txt", 2)
	require.NoError(t, err)
	assert.Equal(t, []geom.Vec{{0.1, 0.2}, {0.3, 0.4}, {0.5, 0.6}}, sources)
	assert.Equal(t, []complex128{1 - 1i, 0.5 + 0.25i, 2i}, charges)

	targets, err := ReadTargets("testdata/targets.txt", 2)
	require.NoError(t, err)
	assert.Equal(t, []geom.Vec{{0.7, 0.8}, {0.9, 1.0}}, targets)
}

func TestWriteReport(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, WritePairs(buf, []complex128{1, 2i}, []complex128{1, 2}))
	assert.Equal(t, "(1+0i)\t(1+0i)\n(0+2i)\t(2+0i)\n", buf.String())

	buf.Reset()
	rep := &analyze.Report{Aggregate: 0.5, Average: 0.25, Maximum: 1}
	require.NoError(t, WriteReport(buf, rep))
	assert.Equal(t,
		"Vector  relative error: 0.5\n"+
			"Average relative error: 0.25\n"+
			"Maximum relative error: 1\n",
		buf.String(),
	)
}
