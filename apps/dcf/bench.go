//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"crypto/rand"
	"fmt"
	"math"
	"time"

	"github.com/google/logger"
	"github.com/markkurossi/tabulate"
	"github.com/markkurossi/text/superscript"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/xymeng16/dcf"
	"github.com/xymeng16/dcf/group"
)

var benchConfig string

// benchGrid is the benchmark parameter grid. The defaults cover the
// common widths over a few domain sizes; a YAML config can override
// any dimension.
type benchGrid struct {
	Lambdas []int
	Bits    []int
	Widths  []int
	Batch   int
	Workers int
	Backend string
}

func defaultGrid() benchGrid {
	return benchGrid{
		Lambdas: []int{128},
		Bits:    []int{8, 16, 32},
		Widths:  []int{8, 32, 64, 128},
		Batch:   4096,
		Workers: 0,
		Backend: "aes",
	}
}

func loadGrid(path string) (benchGrid, error) {
	grid := defaultGrid()
	if len(path) == 0 {
		return grid, nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return grid, err
	}
	if v.IsSet("lambdas") {
		grid.Lambdas = v.GetIntSlice("lambdas")
	}
	if v.IsSet("bits") {
		grid.Bits = v.GetIntSlice("bits")
	}
	if v.IsSet("widths") {
		grid.Widths = v.GetIntSlice("widths")
	}
	if v.IsSet("batch") {
		grid.Batch = v.GetInt("batch")
	}
	if v.IsSet("workers") {
		grid.Workers = v.GetInt("workers")
	}
	if v.IsSet("backend") {
		grid.Backend = v.GetString("backend")
	}
	return grid, nil
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark Gen, Eval, and BatchEval across a parameter grid",
	RunE: func(cmd *cobra.Command, args []string) error {
		grid, err := loadGrid(benchConfig)
		if err != nil {
			return err
		}

		tab := tabulate.New(tabulate.UnicodeLight)
		tab.Header("λ").SetAlign(tabulate.MR)
		tab.Header("Domain").SetAlign(tabulate.MR)
		tab.Header("m").SetAlign(tabulate.MR)
		tab.Header("Gen").SetAlign(tabulate.MR)
		tab.Header("Eval").SetAlign(tabulate.MR)
		tab.Header("Batch/pt").SetAlign(tabulate.MR)
		tab.Header("Speedup").SetAlign(tabulate.MR)

		pool := dcf.NewPool(grid.Workers)
		for _, lambda := range grid.Lambdas {
			for _, bits := range grid.Bits {
				for _, width := range grid.Widths {
					err := benchPoint(tab, pool, grid, lambda, bits, width)
					if err != nil {
						return err
					}
				}
			}
		}
		tab.Print(cmd.OutOrStdout())
		return nil
	},
}

func benchPoint(tab *tabulate.Tabulate, pool *dcf.Pool, grid benchGrid,
	lambda, bits, width int) error {

	params := dcf.Params{
		Lambda: lambda,
		Bits:   bits,
		Width:  group.Width(width),
	}
	g, err := newExpander(grid.Backend, lambda)
	if err != nil {
		return err
	}

	logger.Infof("bench %v, batch=%d, workers=%d",
		params, grid.Batch, pool.Workers())

	alpha := randomElem(bits)
	beta := group.ValueFromUint64(1)

	genStart := time.Now()
	key0, _, err := dcf.Gen(params, alpha, beta, g, rand.Reader)
	if err != nil {
		return err
	}
	genD := time.Since(genStart)

	xs := make([]group.Elem, grid.Batch)
	for i := range xs {
		xs[i] = randomElem(bits)
	}

	seqStart := time.Now()
	if _, err := dcf.BatchEval(key0, xs, g); err != nil {
		return err
	}
	seqD := time.Since(seqStart)

	poolStart := time.Now()
	if _, err := pool.BatchEval(key0, xs, g); err != nil {
		return err
	}
	poolD := time.Since(poolStart)

	row := tab.Row()
	row.Column(fmt.Sprintf("%d", lambda))
	row.Column(fmt.Sprintf("2%s", superscript.Itoa(bits)))
	row.Column(fmt.Sprintf("%d", width))
	row.Column(genD.String())
	row.Column((seqD / time.Duration(len(xs))).String())
	row.Column((poolD / time.Duration(len(xs))).String())
	row.Column(fmt.Sprintf("%.2fx",
		math.Max(0, float64(seqD)/float64(poolD))))

	return nil
}

func randomElem(bits int) group.Elem {
	e := group.NewElem(bits)
	if _, err := rand.Read(e); err != nil {
		panic(err)
	}
	// Mask the unused low-order bits of the last byte.
	if bits%8 != 0 {
		e[len(e)-1] &= 0xff << (8 - bits%8)
	}
	return e
}
