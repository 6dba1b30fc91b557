// Package sysmon samples host and process resource usage for the TUI header.
package sysmon

import (
	"os"
	"runtime"
	"sync"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

// Stats is one resource snapshot. Fields that could not be read stay zero.
type Stats struct {
	CPUPercent float64 // host, 0..100
	MemPercent float64 // host, 0..100
	RSSBytes   uint64  // this process
	Goroutines int
}

// Sampler reads Stats for the current process.
type Sampler struct {
	proc *process.Process
}

// NewSampler returns a Sampler bound to the running process. When the
// process handle cannot be opened only host figures are reported.
func NewSampler() *Sampler {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		p = nil
	}
	return &Sampler{proc: p}
}

// Sample collects one snapshot. CPU is the delta since the previous call.
func (s *Sampler) Sample() Stats {
	st := Stats{Goroutines: runtime.NumGoroutine()}
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		st.CPUPercent = pcts[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil && vm != nil {
		st.MemPercent = vm.UsedPercent
	}
	if s.proc != nil {
		if mi, err := s.proc.MemoryInfo(); err == nil && mi != nil {
			st.RSSBytes = mi.RSS
		}
	}
	return st
}

var defaultSampler = sync.OnceValue(NewSampler)

// Sample reads a snapshot from a process-wide Sampler.
func Sample() Stats { return defaultSampler().Sample() }
