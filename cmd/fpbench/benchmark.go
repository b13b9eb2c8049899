package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/urfave/cli/v3"
	gonumBlas "gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/gonum"

	"github.com/flwende/fp/blas"
	"github.com/flwende/fp/codec"
	"github.com/flwende/fp/internal/fplog"
)

// positional defaults, per the benchmark driver's §6.4 contract: m, n,
// num_matrices, bs, use_reference_blas.
const (
	defaultM            = 256
	defaultN            = 256
	defaultNumMatrices  = 100
	defaultBS           = 32
	defaultUseReference = 0
)

func positionalInt(args cli.Args, idx, def int) int {
	if idx >= args.Len() {
		return def
	}
	v, err := strconv.Atoi(args.Get(idx))
	if err != nil {
		return def
	}
	return v
}

// workerResult is one worker goroutine's contribution: total wall time
// spent on its share of matrices, and the worst relative error observed
// against reference BLAS (only populated when useReference is set).
type workerResult struct {
	id        int
	count     int
	duration  time.Duration
	maxRelErr float64
}

func runBenchmark(ctx context.Context, cmd *cli.Command) error {
	log := fplog.FromContext(ctx)
	args := cmd.Args()

	m := positionalInt(args, 0, defaultM)
	n := positionalInt(args, 1, defaultN)
	numMatrices := positionalInt(args, 2, defaultNumMatrices)
	bs := positionalInt(args, 3, defaultBS)
	useReference := positionalInt(args, 4, defaultUseReference) != 0

	format := codec.DefaultFormat[float64]()
	if be != 0 || bm != 0 {
		fbe, fbm := format.BE, format.BM
		if be != 0 {
			fbe = uint32(be)
		}
		if bm != 0 {
			fbm = uint32(bm)
		}
		format = codec.NewFormat[float64](fbe, fbm)
	}

	log.Info("starting benchmark",
		"m", m, "n", n, "num_matrices", numMatrices, "bs", bs,
		"threads", threads, "use_reference_blas", useReference, "seed", seed)

	rng := rand.New(rand.NewSource(seed))
	sources := make([][]float64, numMatrices)
	vectors := make([][]float64, numMatrices)
	for i := 0; i < numMatrices; i++ {
		sources[i] = randomDense(rng, m*n)
		vectors[i] = randomDense(rng, n)
	}

	workers := int(threads)
	if workers < 1 {
		workers = 1
	}
	if workers > numMatrices && numMatrices > 0 {
		workers = numMatrices
	}

	results := make([]workerResult, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo, hi := chunkBounds(numMatrices, workers, w)
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			results[w] = runWorker(w, lo, hi, m, n, bs, format, sources, vectors, useReference)
		}(w, lo, hi)
	}
	wg.Wait()

	for _, r := range results {
		log.Info("worker done",
			"worker", r.id, "matrices", r.count,
			"duration", r.duration.String(),
			"max_rel_err", r.maxRelErr)
		fmt.Printf("worker %2d: %6d matrices in %10s, max_rel_err=%.3e\n",
			r.id, r.count, r.duration.Round(time.Microsecond), r.maxRelErr)
	}
	return nil
}

func randomDense(rng *rand.Rand, n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = rng.NormFloat64()
	}
	return v
}

// chunkBounds splits [0,total) into `workers` near-equal contiguous
// ranges and returns the [lo,hi) range owned by worker w.
func chunkBounds(total, workers, w int) (lo, hi int) {
	base := total / workers
	rem := total % workers
	lo = w*base + min(w, rem)
	hi = lo + base
	if w < rem {
		hi++
	}
	return
}

func runWorker(id, lo, hi, m, n, bs int, format codec.Format[float64], sources, vectors [][]float64, useReference bool) workerResult {
	start := time.Now()
	maxRelErr := 0.0
	ref := gonum.Implementation{}

	for i := lo; i < hi; i++ {
		mat, err := blas.NewMatrix(sources[i], m, n, n, bs, format)
		if err != nil {
			continue
		}
		y := make([]float64, m)
		if err := mat.MatrixVector(false, 1, vectors[i], 0, y); err != nil {
			continue
		}

		if useReference {
			want := make([]float64, m)
			ref.Dgemv(gonumBlas.NoTrans, m, n, 1, sources[i], n, vectors[i], 1, 0, want, 1)
			if e := maxAbsRelError(y, want); e > maxRelErr {
				maxRelErr = e
			}
		}
	}

	return workerResult{id: id, count: hi - lo, duration: time.Since(start), maxRelErr: maxRelErr}
}

func maxAbsRelError(got, want []float64) float64 {
	worst := 0.0
	for i := range want {
		denom := math.Abs(want[i])
		if denom < 1e-12 {
			denom = 1
		}
		rel := math.Abs(got[i]-want[i]) / denom
		if rel > worst {
			worst = rel
		}
	}
	return worst
}
