package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/julgitt/Memory-Allocator/heap"
	"github.com/julgitt/Memory-Allocator/sbrk"
)

var dumpAllocSize int32

func init() {
	cmd := newDumpCmd()
	cmd.Flags().Int32Var(&dumpAllocSize, "alloc", 0, "Allocate and then free this many bytes before dumping (0 = skip)")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Show segregated free-list bucket occupancy on a fresh heap",
		Long: `The dump command creates a fresh heap, optionally allocates and then
frees a single block, and reports how many free blocks currently sit in each
of the 9 segregated-index buckets.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump()
		},
	}
}

var bucketLabels = [9]string{
	"16", "32", "(32,64]", "(64,128]", "(128,256]",
	"(256,512]", "(512,1024]", "(1024,2048]", ">2048",
}

func runDump() error {
	mem, err := sbrk.New()
	if err != nil {
		return fmt.Errorf("create provider: %w", err)
	}
	h, err := heap.New(mem, heap.DefaultConfig)
	if err != nil {
		return fmt.Errorf("create heap: %w", err)
	}

	if dumpAllocSize > 0 {
		p := h.Malloc(dumpAllocSize)
		h.Free(p)
	}

	counts := h.BucketCounts()
	if jsonOut {
		out := make(map[string]int, len(counts))
		for i, c := range counts {
			out[bucketLabels[i]] = c
		}
		return printJSON(out)
	}

	printInfo("bucket occupancy:\n")
	for i, c := range counts {
		printInfo("  %-12s %d\n", bucketLabels[i], c)
	}
	return nil
}
