package metrics

import "runtime"

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use by application
	TotalAlloc   uint64 // cumulative bytes allocated
	NumGC        uint32 // number of completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause time
}

// MemoryUsage is the difference between two snapshots taken around a run.
type MemoryUsage struct {
	Allocated uint64 // bytes allocated in between
	GCCycles  uint32
	PauseNs   uint64
	HeapAlloc uint64 // heap in use at the later snapshot
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		TotalAlloc:   m.TotalAlloc,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
	}
}

// Since returns the usage between before and s. Counters that went
// backwards (snapshots passed in the wrong order) yield zero.
func (s MemorySnapshot) Since(before MemorySnapshot) MemoryUsage {
	u := MemoryUsage{HeapAlloc: s.HeapAlloc}
	if s.TotalAlloc > before.TotalAlloc {
		u.Allocated = s.TotalAlloc - before.TotalAlloc
	}
	if s.NumGC > before.NumGC {
		u.GCCycles = s.NumGC - before.NumGC
	}
	if s.PauseTotalNs > before.PauseTotalNs {
		u.PauseNs = s.PauseTotalNs - before.PauseTotalNs
	}
	return u
}
