package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Resolver maps user IDs to the admin role from a yaml allowlist file:
//
//	admins:
//	  - 123456789
//
// The list is re-read on a cadence so edits apply without a restart. A
// missing file means an empty allowlist, not an error.
type Resolver struct {
	path string

	mu     sync.RWMutex
	admins map[int64]struct{}
}

type adminsFile struct {
	Admins []int64 `yaml:"admins"`
}

func NewResolver(path string) *Resolver {
	return &Resolver{path: path, admins: make(map[int64]struct{})}
}

func (r *Resolver) IsAdmin(userID int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.admins[userID]
	return ok
}

// Reload re-reads the allowlist file and swaps the set atomically.
func (r *Resolver) Reload() error {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		r.swap(nil)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read admins file: %w", err)
	}

	var parsed adminsFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("parse admins file %q: %w", r.path, err)
	}
	r.swap(parsed.Admins)
	return nil
}

// Watch reloads the allowlist on the given interval until ctx is done.
// A failed reload keeps the previous set.
func (r *Resolver) Watch(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.Reload(); err != nil {
				log.Printf("admin allowlist reload: %v", err)
			}
		}
	}
}

func (r *Resolver) swap(ids []int64) {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	r.mu.Lock()
	r.admins = set
	r.mu.Unlock()
}
