package busobj

import (
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var machineIDFiles = []string{
	"/etc/machine-id",
	"/var/lib/dbus/machine-id",
}

var (
	machineIDOnce sync.Once
	machineID     string
)

// MachineID returns a stable identifier for this host. It never fails:
// when no machine-id file is readable a random identifier is generated
// once per process.
func MachineID() string {
	machineIDOnce.Do(func() {
		for _, path := range machineIDFiles {
			raw, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			if id := strings.TrimSpace(string(raw)); id != "" {
				machineID = id
				return
			}
		}
		machineID = strings.ReplaceAll(uuid.NewString(), "-", "")
	})
	return machineID
}
