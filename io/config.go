package io

import (
	"fmt"

	"gopkg.in/gcfg.v1"
)

const ExampleButterflyFile = `[Butterfly]

#######################
# Required Parameters #
#######################

# Number of source and target points. Ignored for any point set which is read
# from a file.
Sources = 1000
Targets = 1000

# Dimension of the points.
Dim = 1

#######################
# Optional Parameters #
#######################

# Target number of points per leaf box. Default is 16.
# LeafSize = 16

# Chebyshev nodes per axis in every expansion. Default is 8.
# Order = 8

# Largest phase spread, in cycles, which a box pair may have and still be
# compressed. Default is 0.5.
# MaxSpread = 0.5

# Frequency of the Fourier kernel exp(2 pi i Scale t.s). Default is 1.
# Scale = 1

# If Decay is positive, the kernel is damped by exp(-Decay |t - s|^2).
# Decay = 0

# Seed used to generate random points and charges. Default is 1.
# Seed = 1

# Goroutines used per level. Default is the number of CPUs.
# Workers = 4

# Whether to compare against a direct O(NM) evaluation. Default is true.
# Check = true

# Whitespace-separated tables to read points from instead of generating them.
# Source rows are Dim coordinates followed by the real and imaginary parts of
# the charge. Target rows are Dim coordinates.
# SourceFile = path/to/sources.txt
# TargetFile = path/to/targets.txt

# If set, a plot of the per-target relative error is written here.
# PlotFile = errors.png`

type ButterflyConfig struct {
	// Required
	Sources, Targets int
	Dim              int

	// Optional
	LeafSize             int
	Order                int
	MaxSpread            float64
	Scale, Decay         float64
	Seed                 int64
	Workers              int
	Check                bool
	SourceFile           string
	TargetFile, PlotFile string
}

type ButterflyWrapper struct {
	Butterfly ButterflyConfig
}

// DefaultButterflyWrapper returns a wrapper with every optional parameter set
// to its default.
func DefaultButterflyWrapper() *ButterflyWrapper {
	con := ButterflyConfig{
		Sources: 1000, Targets: 1000, Dim: 1,
		LeafSize: 16, Order: 8, MaxSpread: 0.5,
		Scale: 1, Seed: 1, Check: true,
	}
	return &ButterflyWrapper{con}
}

// ReadButterflyConfig reads the [Butterfly] section of a gcfg file on top of
// the defaults.
func ReadButterflyConfig(fname string) (*ButterflyConfig, error) {
	wrap := DefaultButterflyWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, fmt.Errorf("Could not read '%s': %w", fname, err)
	}
	con := &wrap.Butterfly
	if err := con.CheckInit(); err != nil {
		return nil, err
	}
	return con, nil
}

func (con *ButterflyConfig) ValidSources() bool {
	return con.Sources > 0 || con.SourceFile != ""
}
func (con *ButterflyConfig) ValidTargets() bool {
	return con.Targets > 0 || con.TargetFile != ""
}
func (con *ButterflyConfig) ValidDim() bool {
	return con.Dim > 0
}
func (con *ButterflyConfig) ValidLeafSize() bool {
	return con.LeafSize > 0
}
func (con *ButterflyConfig) ValidOrder() bool {
	return con.Order > 0
}
func (con *ButterflyConfig) ValidDecay() bool {
	return con.Decay >= 0
}
func (con *ButterflyConfig) ValidWorkers() bool {
	return con.Workers >= 0
}

// CheckInit returns an error describing the first invalid parameter.
func (con *ButterflyConfig) CheckInit() error {
	switch {
	case !con.ValidSources():
		return fmt.Errorf("Sources must be positive, but is %d.", con.Sources)
	case !con.ValidTargets():
		return fmt.Errorf("Targets must be positive, but is %d.", con.Targets)
	case !con.ValidDim():
		return fmt.Errorf("Dim must be positive, but is %d.", con.Dim)
	case !con.ValidLeafSize():
		return fmt.Errorf("LeafSize must be positive, but is %d.",
			con.LeafSize)
	case !con.ValidOrder():
		return fmt.Errorf("Order must be positive, but is %d.", con.Order)
	case !con.ValidDecay():
		return fmt.Errorf("Decay cannot be negative, but is %g.", con.Decay)
	case !con.ValidWorkers():
		return fmt.Errorf("Workers cannot be negative, but is %d.",
			con.Workers)
	}
	return nil
}
