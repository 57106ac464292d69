// internal/sysinfo/bootid.go
package sysinfo

import (
	"os"
	"strings"
)

var bootIDPath = "/proc/sys/kernel/random/boot_id"

// BootID returns the kernel's per-boot identifier, or "unknown" when it
// cannot be read. The value is opaque; only equality across cycles
// matters.
func BootID() string {
	data, err := os.ReadFile(bootIDPath)
	if err != nil {
		return "unknown"
	}

	id := strings.TrimSpace(string(data))
	if id == "" {
		return "unknown"
	}
	return id
}
