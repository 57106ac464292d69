// internal/sysinfo/sysinfo.go
package sysinfo

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

// cpuSampleWindow is how long the CPU usage probe samples for. Short
// enough to stay well inside one monitoring cycle.
const cpuSampleWindow = 200 * time.Millisecond

// Report holds the host state blocks for one snapshot. The Info fields
// are free-form text; downstream consumers display them, they do not
// parse them.
type Report struct {
	Hostname   string
	IPAddress  string
	CPUInfo    string
	MemoryInfo string
	SwapInfo   string
	ThreadInfo string
}

// Collector reads host state. Each probe degrades to placeholder text
// on failure; Collect itself never fails a cycle.
type Collector struct {
	Hostname       string // overrides os.Hostname when set
	CollectThreads bool
}

// Collect gathers one report.
func (c *Collector) Collect(ctx context.Context) Report {
	r := Report{
		Hostname:   c.hostname(),
		IPAddress:  localIP(),
		CPUInfo:    cpuInfo(ctx),
		MemoryInfo: memoryInfo(ctx),
		SwapInfo:   swapInfo(ctx),
	}

	if c.CollectThreads {
		r.ThreadInfo = threadInfo(ctx)
	}

	return r
}

func (c *Collector) hostname() string {
	if c.Hostname != "" {
		return c.Hostname
	}

	name, err := os.Hostname()
	if err != nil || name == "" {
		return "unknown"
	}
	return name
}

// localIP returns the first global unicast IPv4 address on an up,
// non-loopback interface, or "" when the host has none.
func localIP() string {
	ifaces, err := net.Interfaces()
	if err != nil {
		return ""
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			ipNet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			ip := ipNet.IP.To4()
			if ip == nil || !ip.IsGlobalUnicast() {
				continue
			}
			return ip.String()
		}
	}

	return ""
}

func cpuInfo(ctx context.Context) string {
	percents, err := cpu.PercentWithContext(ctx, cpuSampleWindow, false)
	if err != nil || len(percents) == 0 {
		return "cpu: unavailable"
	}

	line := fmt.Sprintf("cpu: %.1f%% used", percents[0])
	if count, err := cpu.CountsWithContext(ctx, true); err == nil {
		line += fmt.Sprintf(" across %d cores", count)
	}
	if avg, err := load.AvgWithContext(ctx); err == nil {
		line += fmt.Sprintf(", load %.2f %.2f %.2f", avg.Load1, avg.Load5, avg.Load15)
	}

	return line
}

func memoryInfo(ctx context.Context) string {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return "memory: unavailable"
	}
	return formatMemory(vm)
}

func formatMemory(vm *mem.VirtualMemoryStat) string {
	return fmt.Sprintf("memory: %s used of %s (%.1f%%)",
		humanize.IBytes(vm.Used), humanize.IBytes(vm.Total), vm.UsedPercent)
}

func swapInfo(ctx context.Context) string {
	sw, err := mem.SwapMemoryWithContext(ctx)
	if err != nil {
		return "swap: unavailable"
	}
	return formatSwap(sw)
}

func formatSwap(sw *mem.SwapMemoryStat) string {
	if sw.Total == 0 {
		return "swap: none configured"
	}
	return fmt.Sprintf("swap: %s used of %s (%.1f%%)",
		humanize.IBytes(sw.Used), humanize.IBytes(sw.Total), sw.UsedPercent)
}

func threadInfo(ctx context.Context) string {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return "threads: unavailable"
	}

	var total int64
	var busiest *process.Process
	var busiestThreads int32

	for _, p := range procs {
		n, err := p.NumThreadsWithContext(ctx)
		if err != nil {
			continue // process may have exited mid-scan
		}
		total += int64(n)
		if n > busiestThreads {
			busiestThreads = n
			busiest = p
		}
	}

	if busiest == nil {
		return fmt.Sprintf("threads: %d total", total)
	}

	name, err := busiest.NameWithContext(ctx)
	if err != nil {
		name = "?"
	}

	return fmt.Sprintf("threads: %d total, busiest %s (%d)", total, name, busiestThreads)
}
