//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Command dcf is the command-line harness for the distributed
// comparison function library: it generates key pairs, evaluates
// them, reconstructs outputs, dumps keys in the textual fixture form,
// and drives the benchmark grid. The harness owns all boundary
// concerns (entropy wiring, file I/O, logging); the library packages
// stay pure.
package main

import (
	"crypto/rand"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/logger"
	"github.com/spf13/cobra"

	"github.com/xymeng16/dcf"
	"github.com/xymeng16/dcf/group"
	"github.com/xymeng16/dcf/prg"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "dcf",
	Short: "Distributed comparison function key tool",
	Long: `Generate, evaluate, and inspect distributed comparison function
(DCF) keys. A key pair shares the function f(x) = beta if x < alpha,
else 0; evaluating both keys at x and subtracting the shares
reconstructs f(x) without revealing alpha or beta to either party.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		lg := logger.Init("dcf", verbose, false, os.Stderr)
		cobra.OnFinalize(lg.Close)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"verbose output")
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(combineCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(benchCmd)

	genCmd.Flags().Uint64Var(&genAlpha, "alpha", 0, "threshold alpha")
	genCmd.Flags().Uint64Var(&genBeta, "beta", 1, "payload beta")
	genCmd.Flags().IntVar(&genBits, "bits", 16, "domain bit width n")
	genCmd.Flags().IntVar(&genWidth, "width", 64, "output group width m")
	genCmd.Flags().IntVar(&genLambda, "lambda", 128, "seed length in bits")
	genCmd.Flags().StringVar(&genBackend, "backend", "aes",
		"expander backend (aes, chacha20)")
	genCmd.Flags().StringVar(&genOut, "out", "dcf", "output file prefix")
	genCmd.Flags().BoolVar(&genText, "text", false,
		"write keys in the textual fixture form")

	evalCmd.Flags().StringVar(&evalKey, "key", "", "key file")
	evalCmd.Flags().StringVar(&evalBackend, "backend", "aes",
		"expander backend (aes, chacha20)")
	evalCmd.Flags().UintSliceVar(&evalPoints, "point", nil,
		"evaluation point (repeatable)")
	evalCmd.Flags().StringVar(&evalBatch, "batch", "",
		"file of evaluation points, one per line")
	evalCmd.Flags().IntVar(&evalWorkers, "workers", 0,
		"batch workers (0 selects the number of CPUs)")
	evalCmd.MarkFlagRequired("key")

	combineCmd.Flags().Uint64Var(&combineS0, "share0", 0, "party 0 share")
	combineCmd.Flags().Uint64Var(&combineS1, "share1", 0, "party 1 share")
	combineCmd.Flags().IntVar(&combineWidth, "width", 64,
		"output group width m")

	inspectCmd.Flags().StringVar(&inspectKey, "key", "", "key file")
	inspectCmd.MarkFlagRequired("key")

	benchCmd.Flags().StringVar(&benchConfig, "config", "",
		"benchmark grid YAML")
}

var (
	genAlpha   uint64
	genBeta    uint64
	genBits    int
	genWidth   int
	genLambda  int
	genBackend string
	genOut     string
	genText    bool
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate a DCF key pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := dcf.Params{
			Lambda: genLambda,
			Bits:   genBits,
			Width:  group.Width(genWidth),
		}
		g, err := newExpander(genBackend, genLambda)
		if err != nil {
			return err
		}
		if genBits > 64 {
			return fmt.Errorf("gen: --alpha is limited to 64-bit domains")
		}
		alpha := group.ElemFromUint64(genAlpha, genBits)
		beta := group.ValueFromUint64(genBeta)

		logger.Infof("generating key pair: %v, alpha=%d, beta=%d",
			params, genAlpha, genBeta)

		key0, key1, err := dcf.Gen(params, alpha, beta, g, rand.Reader)
		if err != nil {
			return err
		}
		if err := writeKey(key0, keyPath(genOut, 0)); err != nil {
			return err
		}
		if err := writeKey(key1, keyPath(genOut, 1)); err != nil {
			return err
		}
		fmt.Printf("wrote %s and %s\n", keyPath(genOut, 0), keyPath(genOut, 1))
		return nil
	},
}

var (
	evalKey     string
	evalBackend string
	evalPoints  []uint
	evalBatch   string
	evalWorkers int
)

// readPoints parses a batch file: one decimal point per line, blank
// lines and #-comments skipped.
func readPoints(path string) ([]uint64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var points []uint64
	for lineno, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if len(line) == 0 || strings.HasPrefix(line, "#") {
			continue
		}
		pt, err := strconv.ParseUint(line, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: bad point %q",
				path, lineno+1, line)
		}
		points = append(points, pt)
	}
	return points, nil
}

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate a key share at one or more points",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := readKey(evalKey)
		if err != nil {
			return err
		}
		g, err := newExpander(evalBackend, key.Params.Lambda)
		if err != nil {
			return err
		}
		if key.Params.Bits > 64 {
			return fmt.Errorf("eval: --point is limited to 64-bit domains")
		}
		points := make([]uint64, 0, len(evalPoints))
		for _, pt := range evalPoints {
			points = append(points, uint64(pt))
		}
		if len(evalBatch) > 0 {
			batch, err := readPoints(evalBatch)
			if err != nil {
				return err
			}
			points = append(points, batch...)
		}
		if len(points) == 0 {
			return fmt.Errorf("eval: no --point or --batch given")
		}

		xs := make([]group.Elem, len(points))
		for i, pt := range points {
			xs[i] = group.ElemFromUint64(pt, key.Params.Bits)
		}
		logger.Infof("evaluating %s at %d points", key, len(xs))

		shares, err := dcf.NewPool(evalWorkers).BatchEval(key, xs, g)
		if err != nil {
			return err
		}
		for i, share := range shares {
			fmt.Printf("%d\t%s\n", points[i],
				formatValue(key.Params.Width, share))
		}
		return nil
	},
}

var (
	combineS0    uint64
	combineS1    uint64
	combineWidth int
)

var combineCmd = &cobra.Command{
	Use:   "combine",
	Short: "Reconstruct f(x) from the two parties' shares",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := group.Width(combineWidth)
		if err := w.Validate(); err != nil {
			return err
		}
		out := dcf.Combine(w,
			group.ValueFromUint64(combineS0),
			group.ValueFromUint64(combineS1))
		fmt.Printf("%s\n", formatValue(w, out))
		return nil
	},
}

var inspectKey string

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print a key in the textual fixture form",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := readKey(inspectKey)
		if err != nil {
			return err
		}
		text, err := key.MarshalText()
		if err != nil {
			return err
		}
		os.Stdout.Write(text)
		return nil
	},
}

func newExpander(backend string, lambda int) (prg.Expander, error) {
	switch backend {
	case "aes":
		return prg.NewAES(lambda)
	case "chacha20":
		return prg.NewChaCha20(lambda)
	default:
		return nil, fmt.Errorf("unknown expander backend %q", backend)
	}
}

func keyPath(prefix string, party int) string {
	return fmt.Sprintf("%s.%d.key", prefix, party)
}

func writeKey(key *dcf.Key, path string) error {
	var data []byte
	var err error
	if genText {
		data, err = key.MarshalText()
	} else {
		data, err = key.Marshal()
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

func readKey(path string) (*dcf.Key, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	key, err := dcf.Unmarshal(data)
	if err == nil {
		return key, nil
	}
	// Fall back to the textual fixture form.
	var tkey dcf.Key
	if terr := tkey.UnmarshalText(data); terr == nil {
		return &tkey, nil
	}
	return nil, err
}

func formatValue(w group.Width, v group.Value) string {
	if w <= 64 {
		return fmt.Sprintf("%d", v.Uint64())
	}
	return fmt.Sprintf("%x", w.Bytes(v))
}
