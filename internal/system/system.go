package system

import (
	"log"
	"math"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// OptimalThreadCount sizes the encoder's thread pool at 75% of the
// logical cores, leaving headroom for the compositor. Falls back to the
// Go runtime's view when the system probe fails.
func OptimalThreadCount() int {
	count, err := cpu.Counts(true)
	if err != nil || count <= 0 {
		count = runtime.NumCPU()
	}
	return int(math.Max(1, float64(count)*0.75))
}

// LogResourceStats prints memory and CPU diagnostics. Called before a
// render in verbose mode; frame buffers for high-resolution video can
// be large and this makes low-memory failures easier to diagnose.
func LogResourceStats() {
	if vm, err := mem.VirtualMemory(); err == nil {
		log.Printf("System memory: %.1f GB total, %.1f GB available (%.1f%% used)\n",
			float64(vm.Total)/1024/1024/1024,
			float64(vm.Available)/1024/1024/1024,
			vm.UsedPercent)
	}
	if count, err := cpu.Counts(true); err == nil {
		log.Printf("Logical CPUs: %d, encoder threads: %d\n", count, OptimalThreadCount())
	}
}
