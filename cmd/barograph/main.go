// cmd/barograph/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/signalnine/barograph/internal/checkpoint"
	"github.com/signalnine/barograph/internal/config"
	"github.com/signalnine/barograph/internal/dmesg"
	"github.com/signalnine/barograph/internal/monitor"
	"github.com/signalnine/barograph/internal/server"
	"github.com/signalnine/barograph/internal/snapshot"
	"github.com/signalnine/barograph/internal/sysinfo"
)

var (
	configPath   string
	flagInterval time.Duration
	flagOutput   string
	flagListen   string
	flagStateDir string
	flagThreads  bool
	flagSince    float64
)

var rootCmd = &cobra.Command{
	Use:   "barograph",
	Short: "local host monitor with incremental dmesg capture",
}

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Run the monitoring loop",
	RunE:  runMonitor,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the published snapshot over HTTP",
	RunE:  runServe,
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Print one snapshot to stdout without touching the checkpoint",
	RunE:  runSnapshot,
}

var dmesgCmd = &cobra.Command{
	Use:   "dmesg",
	Short: "Print kernel log lines, optionally only those past a timestamp",
	RunE:  runDmesg,
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// Flag overrides
	if flagInterval > 0 {
		cfg.Interval = flagInterval
	}
	if flagOutput != "" {
		cfg.OutputPath = flagOutput
	}
	if flagListen != "" {
		cfg.ListenAddr = flagListen
	}
	if flagStateDir != "" {
		cfg.StateDir = flagStateDir
	}
	if flagThreads {
		cfg.CollectThreads = true
	}

	return cfg, nil
}

func runMonitor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := checkpoint.Open(cfg.CheckpointPath())
	if err != nil {
		return fmt.Errorf("open checkpoint store: %w", err)
	}
	defer store.Close()

	system := &sysinfo.Collector{Hostname: cfg.Hostname, CollectThreads: cfg.CollectThreads}
	sink := &snapshot.FileSink{Path: cfg.OutputPath}
	mon := monitor.New(cfg, store, dmesg.CommandSource{}, system, sink)

	if cfg.ListenAddr != "" {
		srv := server.New(cfg.ListenAddr, cfg.OutputPath)
		go func() {
			if err := srv.Run(ctx); err != nil {
				log.Printf("Server error: %v", err)
			}
		}()
	}

	return mon.Run(ctx)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	addr := cfg.ListenAddr
	if addr == "" {
		addr = ":8080"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(addr, cfg.OutputPath).Run(ctx)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()

	// Read the stored watermark when one exists, but never write it
	// back; a snapshot here must not steal lines from a running monitor.
	var since float64
	if store, err := checkpoint.Open(cfg.CheckpointPath()); err == nil {
		if cp, err := store.Load(); err == nil {
			cp, _ = checkpoint.Reconcile(cp, sysinfo.BootID())
			since = cp.LastLogOffset
		}
		store.Close()
	}

	var fresh []dmesg.Entry
	entries, err := dmesg.CommandSource{}.Collect(ctx)
	if err != nil {
		log.Printf("WARNING: collect kernel log: %v", err)
	} else {
		fresh, _ = dmesg.Extract(entries, since)
	}

	system := &sysinfo.Collector{Hostname: cfg.Hostname, CollectThreads: cfg.CollectThreads}
	snap := snapshot.Assemble(system.Collect(ctx), fresh, time.Now())
	return snapshot.Encode(os.Stdout, snap)
}

func runDmesg(cmd *cobra.Command, args []string) error {
	entries, err := dmesg.CommandSource{}.Collect(context.Background())
	if err != nil {
		return err
	}

	// Without --since, print the whole buffer as parsed
	if !cmd.Flags().Changed("since") {
		for _, e := range entries {
			fmt.Println(e.Raw)
		}
		return nil
	}

	fresh, _ := dmesg.Extract(entries, flagSince)
	for _, e := range fresh {
		fmt.Println(e.Raw)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config file")

	monitorCmd.Flags().DurationVar(&flagInterval, "interval", 0, "cycle interval (overrides config)")
	monitorCmd.Flags().StringVar(&flagOutput, "output", "", "snapshot output path (overrides config)")
	monitorCmd.Flags().StringVar(&flagListen, "listen", "", "also serve the snapshot on this address")
	monitorCmd.Flags().StringVar(&flagStateDir, "state-dir", "", "checkpoint directory (overrides config)")
	monitorCmd.Flags().BoolVar(&flagThreads, "threads", false, "collect per-process thread counts")

	serveCmd.Flags().StringVar(&flagListen, "listen", "", "listen address (default :8080)")
	serveCmd.Flags().StringVar(&flagOutput, "output", "", "snapshot path to serve (overrides config)")

	snapshotCmd.Flags().StringVar(&flagStateDir, "state-dir", "", "checkpoint directory (overrides config)")
	snapshotCmd.Flags().BoolVar(&flagThreads, "threads", false, "collect per-process thread counts")

	dmesgCmd.Flags().Float64Var(&flagSince, "since", 0, "only lines stamped after this many seconds since boot")

	rootCmd.AddCommand(monitorCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(dmesgCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
