// internal/monitor/monitor.go
package monitor

import (
	"context"
	"log"
	"time"

	"github.com/signalnine/barograph/internal/checkpoint"
	"github.com/signalnine/barograph/internal/config"
	"github.com/signalnine/barograph/internal/dmesg"
	"github.com/signalnine/barograph/internal/snapshot"
	"github.com/signalnine/barograph/internal/sysinfo"
)

// LogSource produces a full kernel ring buffer dump each cycle.
type LogSource interface {
	Collect(ctx context.Context) ([]dmesg.Entry, error)
}

// SystemSource gathers the host report for a snapshot.
type SystemSource interface {
	Collect(ctx context.Context) sysinfo.Report
}

// Publisher delivers the assembled snapshot.
type Publisher interface {
	Publish(*snapshot.Snapshot) error
}

// Monitor runs the sample, extract, publish cycle.
type Monitor struct {
	cfg    *config.Config
	store  checkpoint.Store
	logs   LogSource
	system SystemSource
	sink   Publisher
	bootID func() string
	now    func() time.Time
}

// New creates a monitor from its collaborators.
func New(cfg *config.Config, store checkpoint.Store, logs LogSource, system SystemSource, sink Publisher) *Monitor {
	return &Monitor{
		cfg:    cfg,
		store:  store,
		logs:   logs,
		system: system,
		sink:   sink,
		bootID: sysinfo.BootID,
		now:    time.Now,
	}
}

// Run executes cycles until the context is cancelled. The first cycle
// runs immediately.
func (m *Monitor) Run(ctx context.Context) error {
	log.Printf("Monitor starting: hostname=%s interval=%s output=%s",
		m.cfg.Hostname, m.cfg.Interval, m.cfg.OutputPath)

	ticker := time.NewTicker(m.cfg.Interval)
	defer ticker.Stop()

	m.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("Monitor shutting down")
			return nil
		case <-ticker.C:
			m.RunOnce(ctx)
		}
	}
}

// RunOnce performs one cycle: reconcile the checkpoint against the
// current boot, extract log lines past the watermark, persist progress,
// then assemble and publish the snapshot. Failures inside the cycle
// degrade and are logged; the next cycle starts from whatever the store
// holds.
func (m *Monitor) RunOnce(ctx context.Context) {
	cyclesTotal.Inc()

	cp, err := m.store.Load()
	if err != nil {
		log.Printf("WARNING: read checkpoint: %v (starting from zero)", err)
		cp = checkpoint.Checkpoint{}
	}

	cur, reset := checkpoint.Reconcile(cp, m.bootID())
	if reset {
		bootResetsTotal.Inc()
		if cp.BootID == "" {
			log.Printf("No previous checkpoint, starting fresh on boot %s", cur.BootID)
		} else {
			log.Printf("Reboot detected: boot id %s -> %s, log watermark reset", cp.BootID, cur.BootID)
		}
	}

	entries, err := m.logs.Collect(ctx)
	if err != nil {
		log.Printf("WARNING: collect kernel log: %v", err)
		entries = nil
	}

	fresh, offset := dmesg.Extract(entries, cur.LastLogOffset)
	linesEmittedTotal.Add(float64(len(fresh)))

	if offset > cur.LastLogOffset {
		cur.LastLogOffset = offset
		if err := m.store.Save(cur); err != nil {
			saveFailuresTotal.Inc()
			log.Printf("WARNING: save checkpoint: %v (retrying next cycle)", err)
		}
	}
	logOffsetSeconds.Set(offset)

	report := m.system.Collect(ctx)
	snap := snapshot.Assemble(report, fresh, m.now())

	if err := m.sink.Publish(snap); err != nil {
		publishFailuresTotal.Inc()
		log.Printf("WARNING: publish snapshot: %v", err)
		return
	}

	log.Printf("Published snapshot: %d new dmesg lines, log offset %.6f", len(fresh), offset)
}
