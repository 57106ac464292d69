// internal/dmesg/dmesg.go
package dmesg

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

var timestampRe = regexp.MustCompile(`^\[\s*([0-9]+(?:\.[0-9]+)?)\s*\]`)

// Entry is one kernel ring buffer line. Timestamp is seconds since boot
// and is only meaningful when Stamped is set.
type Entry struct {
	Timestamp float64
	Stamped   bool
	Raw       string
}

// Parse extracts the relative timestamp from a dmesg line.
// Lines without a parseable [seconds.micros] prefix come back unstamped,
// never as an error; continuation lines are normal in the ring buffer.
func Parse(line string) Entry {
	e := Entry{Raw: line}

	matches := timestampRe.FindStringSubmatch(line)
	if len(matches) < 2 {
		return e
	}

	ts, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return e
	}

	e.Timestamp = ts
	e.Stamped = true
	return e
}

// ParseAll parses lines preserving buffer order.
func ParseAll(lines []string) []Entry {
	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		entries = append(entries, Parse(line))
	}
	return entries
}

// Extract returns entries stamped strictly after the since watermark,
// plus the highest timestamp observed. Each entry is compared against
// since itself, not a running value, so an out-of-order buffer still
// emits every line past the watermark. Unstamped entries are skipped
// and never move the watermark. The returned offset is never below
// since.
func Extract(entries []Entry, since float64) ([]Entry, float64) {
	var fresh []Entry
	latest := since

	for _, e := range entries {
		if !e.Stamped {
			continue
		}
		if e.Timestamp > since {
			fresh = append(fresh, e)
		}
		if e.Timestamp > latest {
			latest = e.Timestamp
		}
	}

	return fresh, latest
}

// Source produces a full ring buffer dump.
type Source interface {
	Collect(ctx context.Context) ([]Entry, error)
}

// CommandSource reads the ring buffer by running dmesg.
type CommandSource struct{}

// Collect runs dmesg and parses the output lines.
// Uses LC_ALL=C for consistent output across locales.
func (CommandSource) Collect(ctx context.Context) ([]Entry, error) {
	cmd := exec.CommandContext(ctx, "dmesg")
	cmd.Env = append(os.Environ(), "LC_ALL=C")
	out, err := cmd.Output()
	if err != nil {
		return nil, errors.New("dmesg command failed (check permissions or CAP_SYSLOG): " + err.Error())
	}

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	return ParseAll(lines), nil
}
