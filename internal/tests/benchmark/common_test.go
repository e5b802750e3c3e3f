package benchmark

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/yndnr/memkv-go/internal/storage/memory"
)

// KeyCounts defines the store sizes for benchmarking.
var KeyCounts = []int{10000, 100000, 500000}

// SmallKeyCounts for quick benchmarks.
var SmallKeyCounts = []int{1000, 10000}

// benchKey returns a key with a realistic shape and spread.
func benchKey(i int) string {
	return fmt.Sprintf("user:%d:session", i)
}

// benchValue is a payload in the size range of a small cached record.
var benchValue = make([]byte, 128)

// prefillStore fills a store with count persistent keys.
func prefillStore(store *memory.Store, count int) {
	for i := 0; i < count; i++ {
		store.Set(benchKey(i), benchValue, 0)
	}
}

// reportMemory reports live heap usage after a GC.
func reportMemory(b *testing.B, prefix string) {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	b.ReportMetric(float64(m.HeapAlloc)/(1024*1024), prefix+"_heap_MB")
}
