// internal/dmesg/dmesg_test.go
package dmesg

import (
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		line    string
		want    float64
		stamped bool
	}{
		{"[    0.000000] Linux version 6.8.0-41-generic", 0.0, true},
		{"[   12.345678] usb 1-1: new high-speed USB device", 12.345678, true},
		{"[12345.678901] EXT4-fs (sda1): mounted filesystem", 12345.678901, true},
		{"[ 5.5] short fraction", 5.5, true},
		{"[999] no fraction", 999.0, true},
		{"continuation line without timestamp", 0, false},
		{"", 0, false},
		{"[not a number] text", 0, false},
		{"prefix [1.0] not at line start", 0, false},
	}

	for _, tt := range tests {
		e := Parse(tt.line)
		if e.Stamped != tt.stamped {
			t.Errorf("Parse(%q).Stamped = %v, want %v", tt.line, e.Stamped, tt.stamped)
		}
		if tt.stamped && e.Timestamp != tt.want {
			t.Errorf("Parse(%q).Timestamp = %v, want %v", tt.line, e.Timestamp, tt.want)
		}
		if e.Raw != tt.line {
			t.Errorf("Parse(%q).Raw = %q, want the input line", tt.line, e.Raw)
		}
	}
}

func TestExtract(t *testing.T) {
	lines := []string{
		"[    5.000000] old message",
		"[   10.000000] message at the watermark",
		"[   10.500000] first new message",
		"continuation of the previous line",
		"[   11.200000] second new message",
		"trailing continuation line",
	}

	fresh, offset := Extract(ParseAll(lines), 10.0)

	if len(fresh) != 2 {
		t.Fatalf("Extract returned %d entries, want 2", len(fresh))
	}
	if fresh[0].Timestamp != 10.5 {
		t.Errorf("fresh[0].Timestamp = %v, want 10.5", fresh[0].Timestamp)
	}
	if fresh[1].Timestamp != 11.2 {
		t.Errorf("fresh[1].Timestamp = %v, want 11.2", fresh[1].Timestamp)
	}
	if offset != 11.2 {
		t.Errorf("offset = %v, want 11.2", offset)
	}
}

func TestExtractOutOfOrder(t *testing.T) {
	// Buffer order is preserved even when timestamps are not monotonic,
	// and the earlier entry is still emitted.
	lines := []string{
		"[   12.000000] later message",
		"[   11.000000] earlier message",
	}

	fresh, offset := Extract(ParseAll(lines), 10.0)

	if len(fresh) != 2 {
		t.Fatalf("Extract returned %d entries, want 2", len(fresh))
	}
	if fresh[0].Timestamp != 12.0 || fresh[1].Timestamp != 11.0 {
		t.Errorf("Extract reordered entries: %v, %v", fresh[0].Timestamp, fresh[1].Timestamp)
	}
	if offset != 12.0 {
		t.Errorf("offset = %v, want 12.0", offset)
	}
}

func TestExtractEmpty(t *testing.T) {
	fresh, offset := Extract(nil, 42.5)

	if len(fresh) != 0 {
		t.Errorf("Extract returned %d entries, want 0", len(fresh))
	}
	if offset != 42.5 {
		t.Errorf("offset = %v, want 42.5 unchanged", offset)
	}
}

func TestExtractRerun(t *testing.T) {
	entries := ParseAll([]string{
		"[    1.000000] first",
		"[    2.000000] second",
		"[    3.000000] third",
	})

	fresh, offset := Extract(entries, 0)
	if len(fresh) != 3 {
		t.Fatalf("first pass returned %d entries, want 3", len(fresh))
	}
	if offset != 3.0 {
		t.Fatalf("first pass offset = %v, want 3.0", offset)
	}

	// Same buffer against the advanced watermark emits nothing.
	again, offset2 := Extract(entries, offset)
	if len(again) != 0 {
		t.Errorf("rerun returned %d entries, want 0", len(again))
	}
	if offset2 != offset {
		t.Errorf("rerun offset = %v, want %v unchanged", offset2, offset)
	}
}

func TestExtractStaleBuffer(t *testing.T) {
	// Watermark beyond everything in the buffer: nothing to emit and the
	// offset must not move backward.
	fresh, offset := Extract(ParseAll([]string{"[  100.000000] message"}), 500.0)

	if len(fresh) != 0 {
		t.Errorf("Extract returned %d entries, want 0", len(fresh))
	}
	if offset != 500.0 {
		t.Errorf("offset = %v, want 500.0", offset)
	}
}

func TestExtractUnstampedOnly(t *testing.T) {
	lines := []string{
		"no timestamp here",
		"another bare line",
	}

	fresh, offset := Extract(ParseAll(lines), 3.5)

	if len(fresh) != 0 {
		t.Errorf("Extract returned %d entries, want 0", len(fresh))
	}
	if offset != 3.5 {
		t.Errorf("offset = %v, want 3.5 unchanged", offset)
	}
}
