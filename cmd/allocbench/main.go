// Command allocbench exercises the allocation hook path and reports
// allocator counters and timings.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/wilhasse/cpualloc-go/api"
	"github.com/wilhasse/cpualloc-go/kernel"
	"github.com/wilhasse/cpualloc-go/ut"
)

func main() {
	sizeFlag := flag.Int("size", 1024, "Bytes per workspace allocation")
	itersFlag := flag.Int("iters", 100000, "Allocation iterations")
	batchFlag := flag.Int("batch", 8, "BatchGemm batch count")
	dimFlag := flag.Int("dim", 64, "BatchGemm square dimension")
	flag.Parse()

	if err := api.Init(); err != api.AL_SUCCESS {
		fmt.Fprintf(os.Stderr, "init: %v\n", err)
		os.Exit(1)
	}
	defer api.Shutdown()

	b := kernel.New()
	defer b.Close()

	start := time.Now()
	for i := 0; i < *itersFlag; i++ {
		buf := b.AllocWorkspace(*sizeFlag)
		buf[0] = byte(i)
		b.ReleaseWorkspace(buf)
	}
	allocDur := time.Since(start)
	api.Log(nil, "alloc/free %d x %d bytes: %v (%.0f ns/op)\n",
		*itersFlag, *sizeFlag, allocDur,
		float64(allocDur.Nanoseconds())/float64(*itersFlag))

	dim := *dimFlag
	batch := *batchFlag
	ut.RandSetSeed(1)
	a := randFloats(batch * dim * dim)
	bm := randFloats(batch * dim * dim)
	c := make([]float32, batch*dim*dim)
	start = time.Now()
	if err := b.BatchGemm(batch, dim, dim, dim, a, bm, c); err != api.AL_SUCCESS {
		fmt.Fprintf(os.Stderr, "batchgemm: %v\n", err)
		os.Exit(1)
	}
	api.Log(nil, "batchgemm %dx(%d^3): %v\n", batch, dim, time.Since(start))

	api.StatusLog(nil)
}

func randFloats(n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(ut.RandInterval(0, 2000))/1000 - 1
	}
	return out
}
