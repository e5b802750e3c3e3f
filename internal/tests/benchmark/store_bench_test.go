package benchmark

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/yndnr/memkv-go/internal/storage/memory"
)

// BenchmarkStoreSet benchmarks inserts into stores of various sizes.
func BenchmarkStoreSet(b *testing.B) {
	for _, preload := range SmallKeyCounts {
		b.Run(fmt.Sprintf("preload_%d", preload), func(b *testing.B) {
			store := memory.New()
			prefillStore(store, preload)

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				store.Set(benchKey(preload+i), benchValue, 0)
			}

			b.StopTimer()
			reportMemory(b, "mem")
		})
	}
}

// BenchmarkStoreGet benchmarks point lookups at various scales.
func BenchmarkStoreGet(b *testing.B) {
	for _, count := range SmallKeyCounts {
		b.Run(fmt.Sprintf("keys_%d", count), func(b *testing.B) {
			store := memory.New()
			prefillStore(store, count)

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				if _, ok := store.Get(benchKey(i % count)); !ok {
					b.Fatal("expected hit")
				}
			}
		})
	}
}

// BenchmarkStoreGetParallel measures lookup throughput under contention.
func BenchmarkStoreGetParallel(b *testing.B) {
	const count = 10000
	store := memory.New()
	prefillStore(store, count)

	b.ResetTimer()
	b.ReportAllocs()

	b.RunParallel(func(pb *testing.PB) {
		r := rand.New(rand.NewSource(time.Now().UnixNano()))
		for pb.Next() {
			store.Get(benchKey(r.Intn(count)))
		}
	})
}

// BenchmarkStoreMixedParallel measures a 90/10 read/write mix.
func BenchmarkStoreMixedParallel(b *testing.B) {
	const count = 10000
	store := memory.New()
	prefillStore(store, count)

	b.ResetTimer()
	b.ReportAllocs()

	b.RunParallel(func(pb *testing.PB) {
		r := rand.New(rand.NewSource(time.Now().UnixNano()))
		for pb.Next() {
			i := r.Intn(count)
			if i%10 == 0 {
				store.Set(benchKey(i), benchValue, 0)
			} else {
				store.Get(benchKey(i))
			}
		}
	})
}

// BenchmarkStoreSweepExpired benchmarks a sweep over stores where a
// tenth of the keys has expired. A manual clock steps across the TTL
// boundary so setup does not have to sleep.
func BenchmarkStoreSweepExpired(b *testing.B) {
	for _, count := range SmallKeyCounts {
		b.Run(fmt.Sprintf("keys_%d", count), func(b *testing.B) {
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				b.StopTimer()
				now := time.Unix(1700000000, 0)
				store := memory.New(memory.WithClock(func() time.Time { return now }))
				for j := 0; j < count; j++ {
					ttl := time.Duration(0)
					if j%10 == 0 {
						ttl = time.Millisecond
					}
					store.Set(benchKey(j), benchValue, ttl)
				}
				now = now.Add(5 * time.Millisecond)
				b.StartTimer()

				if swept := store.SweepExpired(); swept != count/10 {
					b.Fatalf("swept %d, want %d", swept, count/10)
				}
			}
		})
	}
}

// BenchmarkStoreKeys benchmarks full key enumeration.
func BenchmarkStoreKeys(b *testing.B) {
	for _, count := range SmallKeyCounts {
		b.Run(fmt.Sprintf("keys_%d", count), func(b *testing.B) {
			store := memory.New()
			prefillStore(store, count)

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				if got := store.Keys(); len(got) != count {
					b.Fatalf("Keys returned %d, want %d", len(got), count)
				}
			}
		})
	}
}
