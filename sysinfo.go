package facebench

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// HostInfo describes the machine the benchmark runs on.
type HostInfo struct {
	CPUModel     string
	PhysicalCPUs int
	LogicalCPUs  int
	TotalMemory  uint64
	GOMAXPROCS   int
}

// ProbeHost collects the host details. Values that cannot be read stay zero.
func ProbeHost(ctx context.Context) HostInfo {
	info := HostInfo{GOMAXPROCS: runtime.GOMAXPROCS(0)}

	if n, err := cpu.CountsWithContext(ctx, false); err == nil {
		info.PhysicalCPUs = n
	}
	if n, err := cpu.CountsWithContext(ctx, true); err == nil {
		info.LogicalCPUs = n
	}
	if stats, err := cpu.InfoWithContext(ctx); err == nil && len(stats) > 0 {
		info.CPUModel = stats[0].ModelName
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		info.TotalMemory = vm.Total
	}
	return info
}

// LogValue implements slog.LogValuer.
func (h HostInfo) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("cpu", h.CPUModel),
		slog.Int("physical", h.PhysicalCPUs),
		slog.Int("logical", h.LogicalCPUs),
		slog.Uint64("memory", h.TotalMemory),
		slog.Int("gomaxprocs", h.GOMAXPROCS),
	)
}
