package heuristics

import (
	"fmt"
	"os"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"
)

// Save writes the heuristics to file as YAML. A sidecar lock guards against
// concurrent mapping runs writing the same bidsmap.
func Save(h *Heuristics, file string) error {
	lock := flock.New(file + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", file, err)
	}
	defer lock.Unlock()

	data, err := yaml.Marshal(h)
	if err != nil {
		return fmt.Errorf("marshal heuristics: %w", err)
	}

	tmp := file + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, file)
}
