//go:build linux
// +build linux

package cmd

import (
	"fmt"
	"os"

	perf "github.com/hodgesds/perf-utils"
)

// startPerfCounters wraps the solver run with hardware counters when
// the kernel allows it, reporting cycles and instructions at the end
func startPerfCounters() (stop func()) {
	profiler, err := perf.NewHardwareProfiler(os.Getpid(), -1, perf.AllHardwareProfilers)
	if err != nil && !profiler.HasProfilers() {
		return func() {}
	}
	if err = profiler.Start(); err != nil {
		return func() {}
	}
	return func() {
		defer profiler.Close()
		hwProfile := &perf.HardwareProfile{}
		if err := profiler.Profile(hwProfile); err != nil {
			return
		}
		if hwProfile.CPUCycles != nil && hwProfile.Instructions != nil {
			fmt.Printf("perf: %d cycles, %d instructions\n",
				*hwProfile.CPUCycles, *hwProfile.Instructions)
		}
	}
}
