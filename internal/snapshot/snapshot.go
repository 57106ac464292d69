// internal/snapshot/snapshot.go
package snapshot

import (
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/signalnine/barograph/internal/dmesg"
	"github.com/signalnine/barograph/internal/sysinfo"
)

// SystemMetrics is the system_metrics block of the published document.
type SystemMetrics struct {
	CPUInfo    string `json:"cpu_info"`
	MemoryInfo string `json:"memory_info"`
	SwapInfo   string `json:"swap_info"`
	ThreadInfo string `json:"threadinfo"`
}

// Logs holds the incremental log payloads.
type Logs struct {
	Dmesg string `json:"dmesg"`
}

// Snapshot is the document published each cycle. The field names are
// fixed; external collectors parse them.
type Snapshot struct {
	Hostname      string        `json:"hostname"`
	IPAddress     string        `json:"ip_address"`
	Timestamp     string        `json:"timestamp"`
	SystemMetrics SystemMetrics `json:"system_metrics"`
	Logs          Logs          `json:"logs"`
}

// Assemble merges one cycle's host report and fresh log entries. The
// dmesg payload carries only lines new since the last checkpoint,
// joined by newlines, and is empty when nothing new appeared.
func Assemble(report sysinfo.Report, fresh []dmesg.Entry, now time.Time) *Snapshot {
	raw := make([]string, 0, len(fresh))
	for _, e := range fresh {
		raw = append(raw, e.Raw)
	}

	return &Snapshot{
		Hostname:  report.Hostname,
		IPAddress: report.IPAddress,
		Timestamp: now.Format(time.RFC3339),
		SystemMetrics: SystemMetrics{
			CPUInfo:    report.CPUInfo,
			MemoryInfo: report.MemoryInfo,
			SwapInfo:   report.SwapInfo,
			ThreadInfo: report.ThreadInfo,
		},
		Logs: Logs{Dmesg: strings.Join(raw, "\n")},
	}
}

// Encode writes the snapshot as indented JSON.
func Encode(w io.Writer, s *Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
