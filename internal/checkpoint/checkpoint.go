// internal/checkpoint/checkpoint.go
package checkpoint

// UnknownBoot is recorded when the current boot id cannot be read.
const UnknownBoot = "unknown"

// Checkpoint is the persisted reading position in the kernel log.
// LastLogOffset only moves forward within one boot and resets to zero
// when BootID changes. The zero value is the fresh first-run state.
type Checkpoint struct {
	BootID        string
	LastLogOffset float64
}

// Store persists checkpoints across restarts.
type Store interface {
	Load() (Checkpoint, error)
	Save(cp Checkpoint) error
	Close() error
}

// Reconcile compares a stored checkpoint against the current boot id.
// On mismatch it returns a zeroed checkpoint for the new boot and true;
// otherwise the stored checkpoint comes back unchanged. An empty boot
// id is treated as UnknownBoot so it round-trips through the store.
func Reconcile(cp Checkpoint, bootID string) (Checkpoint, bool) {
	if bootID == "" {
		bootID = UnknownBoot
	}

	if cp.BootID == bootID {
		return cp, false
	}

	return Checkpoint{BootID: bootID}, true
}
