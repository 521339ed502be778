// Package sysmon samples host and process resource usage for the dashboard
// and the metrics textfile.
package sysmon

import (
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of resource usage.
type Stats struct {
	CPUPercent float64 // host-wide, 0.0 .. 100.0
	MemPercent float64 // host-wide, 0.0 .. 100.0
	HeapAlloc  uint64  // bytes in use by this process's heap
	Goroutines int
}

// Sample collects a snapshot. CPU uses interval=0 (delta since the last
// call, so the first call may report 0). Host figures are zero on error.
func Sample() Stats {
	var s Stats
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = clampPercent(pcts[0])
	}
	if vmem, err := mem.VirtualMemory(); err == nil && vmem != nil {
		s.MemPercent = clampPercent(vmem.UsedPercent)
	}
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	s.HeapAlloc = ms.HeapAlloc
	s.Goroutines = runtime.NumGoroutine()
	return s
}

func clampPercent(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}
