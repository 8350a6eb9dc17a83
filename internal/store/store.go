// Package store implements the dual-target persistence adapter: a
// durable local cache that is always written synchronously, mirrored
// best-effort to an optional remote key-value store. The local cache is
// the source of truth for responsiveness; the mirror is eventually
// consistent with last-writer-wins semantics and no conflict resolution.
package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// Store is the persistence contract the rest of the application sees.
// Values are opaque JSON-serializable payloads keyed by string.
type Store interface {
	// Get loads the value for key into dest. found=false means neither
	// target holds a value, in which case the caller falls back to its
	// default. Remote failures are logged and recovered locally, never
	// returned.
	Get(ctx context.Context, key string, dest any) (bool, error)

	// Set writes the value to the local cache synchronously, then
	// mirrors it to the remote store in a detached write if a mirror is
	// configured. Mirror failures are logged, never returned, and never
	// roll back the local write.
	Set(ctx context.Context, key string, value any) error

	// Delete removes the key from the local cache. The mirror protocol
	// has no delete verb, so remote entries are left behind.
	Delete(ctx context.Context, key string) error
}

// KV composes the local cache with the optional remote mirror.
type KV struct {
	local  *Local
	remote *Remote
	log    *slog.Logger

	// mirrorTimeout bounds each detached mirror write.
	mirrorTimeout time.Duration
	wg            sync.WaitGroup
}

// New creates a dual store. remote may be nil, which selects local-only
// mode.
func New(local *Local, remote *Remote, log *slog.Logger) *KV {
	return &KV{
		local:         local,
		remote:        remote,
		log:           log,
		mirrorTimeout: 15 * time.Second,
	}
}

// Get implements Store. When a mirror is configured it is consulted
// first and, on success, its value refreshes the local cache. Any mirror
// failure falls back to the cached value.
func (s *KV) Get(ctx context.Context, key string, dest any) (bool, error) {
	if s.remote != nil {
		raw, found, err := s.remote.get(ctx, key)
		switch {
		case err != nil:
			s.log.Warn("remote read failed, using local cache", "key", key, "error", err)
		case found:
			if err := s.local.setRaw(ctx, key, raw); err != nil {
				s.log.Error("failed to refresh local cache", "key", key, "error", err)
			}
			return true, json.Unmarshal(raw, dest)
		default:
			// The mirror is reachable and holds nothing: the key has
			// never been written anywhere.
			return false, nil
		}
	}

	raw, found, err := s.local.getRaw(ctx, key)
	if err != nil || !found {
		return false, err
	}
	return true, json.Unmarshal(raw, dest)
}

// Set implements Store.
func (s *KV) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	if err := s.local.setRaw(ctx, key, raw); err != nil {
		return err
	}

	if s.remote != nil {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), s.mirrorTimeout)
			defer cancel()
			if err := s.remote.set(ctx, key, raw); err != nil {
				s.log.Error("mirror write failed", "key", key, "error", err)
			}
		}()
	}
	return nil
}

// Delete implements Store.
func (s *KV) Delete(ctx context.Context, key string) error {
	return s.local.deleteRaw(ctx, key)
}

// Close waits for in-flight mirror writes and releases the local cache.
func (s *KV) Close() error {
	s.wg.Wait()
	return s.local.Close()
}
