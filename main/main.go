package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	plt "github.com/phil-mansfield/pyplot"

	"github.com/phil-mansfield/butterfly"
	"github.com/phil-mansfield/butterfly/analyze"
	"github.com/phil-mansfield/butterfly/direct"
	"github.com/phil-mansfield/butterfly/geom"
	"github.com/phil-mansfield/butterfly/io"
	"github.com/phil-mansfield/butterfly/kernel"
)

type options struct {
	n, m, dim, leaf, order, workers int
	spread, scale, decay            float64
	seed                            int64
	noCheck, exampleConfig, verbose bool
	configFile, plotFile, profFile  string
	sourceFile, targetFile          string
}

func registerFlags(fs *flag.FlagSet) *options {
	def := io.DefaultButterflyWrapper().Butterfly
	o := &options{}

	fs.IntVar(&o.n, "N", def.Sources, "Number of sources.")
	fs.IntVar(&o.m, "M", def.Targets, "Number of targets.")
	fs.IntVar(&o.dim, "D", def.Dim, "Dimension of the points.")
	fs.IntVar(&o.leaf, "leaf", def.LeafSize, "Target points per leaf box.")
	fs.IntVar(&o.order, "order", def.Order,
		"Chebyshev nodes per axis in each expansion.")
	fs.IntVar(&o.workers, "workers", def.Workers,
		"Goroutines per level. 0 uses every CPU.")
	fs.Float64Var(&o.spread, "spread", def.MaxSpread,
		"Largest compressible phase spread, in cycles.")
	fs.Float64Var(&o.scale, "scale", def.Scale, "Kernel frequency.")
	fs.Float64Var(&o.decay, "decay", def.Decay,
		"Gaussian damping of the kernel. 0 gives a pure Fourier kernel.")
	fs.Int64Var(&o.seed, "seed", def.Seed, "Seed for random points.")
	fs.BoolVar(&o.noCheck, "nocheck", false,
		"Skip the comparison against direct evaluation.")
	fs.BoolVar(&o.exampleConfig, "example-config", false,
		"Print an example configuration file to stdout and exit.")
	fs.BoolVar(&o.verbose, "v", false, "Log progress.")
	fs.StringVar(&o.configFile, "config", "",
		"gcfg configuration file with a [Butterfly] section.")
	fs.StringVar(&o.plotFile, "plot", def.PlotFile,
		"Write a plot of the per-target relative error to this file.")
	fs.StringVar(&o.profFile, "prof", "", "Write a CPU profile to this file.")
	fs.StringVar(&o.sourceFile, "sources", def.SourceFile,
		"Table of source coordinates and charges.")
	fs.StringVar(&o.targetFile, "targets", def.TargetFile,
		"Table of target coordinates.")

	return o
}

// filterArgs removes every flag which fs does not define, along with any
// argument that is not a flag at all.
func filterArgs(fs *flag.FlagSet, args []string) []string {
	out := []string{}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if len(arg) < 2 || arg[0] != '-' {
			continue
		}

		name := strings.TrimLeft(arg, "-")
		hasValue := false
		if eq := strings.Index(name, "="); eq >= 0 {
			name, hasValue = name[:eq], true
		}
		f := fs.Lookup(name)
		if f == nil {
			continue
		}

		out = append(out, arg)
		if hasValue || isBoolFlag(f) {
			continue
		}
		if i+1 < len(args) {
			out = append(out, args[i+1])
			i++
		}
	}
	return out
}

func isBoolFlag(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}

// config reads the configuration file, if any, and then applies every flag
// which was set explicitly.
func (o *options) config(fs *flag.FlagSet) (*io.ButterflyConfig, error) {
	con := &io.DefaultButterflyWrapper().Butterfly
	if o.configFile != "" {
		var err error
		con, err = io.ReadButterflyConfig(o.configFile)
		if err != nil {
			return nil, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "N":
			con.Sources = o.n
		case "M":
			con.Targets = o.m
		case "D":
			con.Dim = o.dim
		case "leaf":
			con.LeafSize = o.leaf
		case "order":
			con.Order = o.order
		case "workers":
			con.Workers = o.workers
		case "spread":
			con.MaxSpread = o.spread
		case "scale":
			con.Scale = o.scale
		case "decay":
			con.Decay = o.decay
		case "seed":
			con.Seed = o.seed
		case "nocheck":
			con.Check = !o.noCheck
		case "plot":
			con.PlotFile = o.plotFile
		case "sources":
			con.SourceFile = o.sourceFile
		case "targets":
			con.TargetFile = o.targetFile
		}
	})

	if err := con.CheckInit(); err != nil {
		return nil, err
	}
	return con, nil
}

func main() {
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	o := registerFlags(fs)
	fs.Parse(filterArgs(fs, os.Args[1:]))

	if o.exampleConfig {
		fmt.Println(io.ExampleButterflyFile)
		return
	}

	con, err := o.config(fs)
	if err != nil {
		log.Fatal(err.Error())
	}

	if err := profiled(con, o.verbose, o.profFile); err != nil {
		log.Fatal(err.Error())
	}
}

// profiled calls run, writing a CPU profile to profFile unless it is empty.
// The profile is flushed even when run fails.
func profiled(con *io.ButterflyConfig, verbose bool, profFile string) error {
	if profFile == "" {
		return run(con, verbose)
	}

	f, err := os.Create(profFile)
	if err != nil {
		return fmt.Errorf("Could not create profile file: %w", err)
	}
	defer f.Close()

	if err := pprof.StartCPUProfile(f); err != nil {
		return fmt.Errorf("Could not start CPU profile: %w", err)
	}
	defer pprof.StopCPUProfile()

	return run(con, verbose)
}

func kernelOf(con *io.ButterflyConfig) kernel.Kernel {
	if con.Decay > 0 {
		return kernel.Chirp{Scale: con.Scale, Decay: con.Decay}
	}
	return kernel.Fourier{Scale: con.Scale}
}

// points reads the sources, charges, and targets from their tables or
// generates them uniformly at random.
func points(con *io.ButterflyConfig) (
	sources []geom.Vec, charges []complex128, targets []geom.Vec, err error,
) {
	gen := rand.New(rand.NewSource(con.Seed))

	if con.SourceFile != "" {
		sources, charges, err = io.ReadSources(con.SourceFile, con.Dim)
		if err != nil {
			return nil, nil, nil, err
		}
	} else {
		sources = geom.UniformVecs(gen, con.Sources, con.Dim)
		charges = make([]complex128, con.Sources)
		for i := range charges {
			charges[i] = complex(gen.Float64(), gen.Float64())
		}
	}

	if con.TargetFile != "" {
		targets, err = io.ReadTargets(con.TargetFile, con.Dim)
		if err != nil {
			return nil, nil, nil, err
		}
	} else {
		targets = geom.UniformVecs(gen, con.Targets, con.Dim)
	}

	return sources, charges, targets, nil
}

func run(con *io.ButterflyConfig, verbose bool) error {
	k := kernelOf(con)
	fmt.Println(kernel.Traits(k, con.Dim))

	sources, charges, targets, err := points(con)
	if err != nil {
		return err
	}

	opts := []butterfly.Option{
		butterfly.WithPolicy(butterfly.Chebyshev{
			Nodes: con.Order, MaxSpread: con.MaxSpread,
		}),
		butterfly.Log(verbose),
	}
	if con.Workers > 0 {
		opts = append(opts, butterfly.Workers(con.Workers))
	}

	start := time.Now()
	result, stats, err := butterfly.Evaluate(
		sources, charges, targets, k, con.LeafSize, opts...,
	)
	if err != nil {
		return err
	}
	if verbose {
		log.Printf("Butterfly finished in %s. Fired: %v", time.Since(start),
			stats.Fired)
	}

	if !con.Check {
		return nil
	}

	start = time.Now()
	exact, err := direct.Matvec(k, sources, charges, targets)
	if err != nil {
		return err
	}
	if verbose {
		log.Printf("Direct matvec finished in %s.", time.Since(start))
	}

	if err := io.WritePairs(os.Stdout, result, exact); err != nil {
		return err
	}

	rep, err := analyze.Errors(result, exact)
	var dne *analyze.DegenerateNormError
	if errors.As(err, &dne) {
		log.Println(err.Error())
	} else if err != nil {
		return err
	}

	fmt.Println()
	if err := io.WriteReport(os.Stdout, rep); err != nil {
		return err
	}

	if con.PlotFile != "" {
		plotErrors(rep, con.PlotFile)
	}
	return nil
}

func plotErrors(rep *analyze.Report, fname string) {
	idxs, rels := []float64{}, []float64{}
	for i, t := range rep.Targets {
		if t.Defined && t.Rel > 0 {
			idxs = append(idxs, float64(i))
			rels = append(rels, t.Rel)
		}
	}

	plt.Figure()
	plt.Plot(idxs, rels, "ok")
	plt.Title(fmt.Sprintf("Vector relative error: %.3g", rep.Aggregate))
	plt.XLabel("Target", plt.FontSize(16))
	plt.YLabel("Relative error", plt.FontSize(16))
	plt.YScale("log")
	plt.Grid(plt.Axis("y"))
	plt.SaveFig(fname)
	plt.Execute()
}
