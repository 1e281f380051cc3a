// Package roster owns the ordered collection of workers and mirrors it into a key/value store.
// Every mutation is followed by a full Save of the collection, a failed Save rolls the mutation back.
package roster

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/crewbook/app/worker"
)

// ErrDuplicateID is returned by Add if a worker with the same id is already in the roster
var ErrDuplicateID = errors.New("worker id already exists")

// Params defines how the roster is opened
type Params struct {
	Key        string // storage key, DefaultKey if empty
	StrictLoad bool   // fail on undecodable stored data instead of starting empty
}

// Roster is the single source of truth for workers of the running session
type Roster struct {
	mu      sync.Mutex
	kv      KV
	key     string
	workers []worker.Worker
}

// Open loads the roster from kv. Undecodable data is moved aside to "<key>.corrupted" and the
// roster starts empty, unless StrictLoad is set.
func Open(kv KV, p Params) (*Roster, error) {
	key := p.Key
	if key == "" {
		key = DefaultKey
	}

	ws, err := Load(kv, key)
	switch {
	case errors.Is(err, ErrCorrupted) && !p.StrictLoad:
		log.Printf("[WARN] %v, starting with empty roster", err)
		if err := backupCorrupted(kv, key); err != nil {
			return nil, err
		}
		ws = []worker.Worker{}
	case err != nil:
		return nil, fmt.Errorf("failed to load roster from %q: %w", key, err)
	}

	log.Printf("[INFO] loaded %d workers from %q", len(ws), key)
	return &Roster{kv: kv, key: key, workers: ws}, nil
}

// Add appends a worker and persists the roster
func (r *Roster) Add(w worker.Worker) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(w.ID) >= 0 {
		return fmt.Errorf("can't add worker %s: %w", w.ID, ErrDuplicateID)
	}

	updated := append(slices.Clone(r.workers), w)
	if err := r.persist(updated); err != nil {
		return err
	}
	log.Printf("[DEBUG] added %s %s (%s %s)", w.Kind, w.ID, w.FirstName, w.LastName)
	return nil
}

// Delete removes the worker with id and persists the roster. It reports false and writes
// nothing if there is no such worker.
func (r *Roster) Delete(id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(id) < 0 {
		return false, nil
	}

	// stored data written elsewhere may repeat an id, none of the copies survives
	updated := slices.DeleteFunc(slices.Clone(r.workers), func(w worker.Worker) bool { return w.ID == id })
	if err := r.persist(updated); err != nil {
		return false, err
	}
	log.Printf("[DEBUG] deleted worker %s", id)
	return true, nil
}

// Clear removes all workers and persists the empty roster
func (r *Roster) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.persist([]worker.Worker{}); err != nil {
		return err
	}
	log.Printf("[INFO] roster cleared")
	return nil
}

// Import appends workers with ids not present in the roster yet and persists once.
// It returns the number of added workers.
func (r *Roster) Import(ws []worker.Worker) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	updated := slices.Clone(r.workers)
	seen := make(map[string]bool, len(updated)+len(ws))
	for _, w := range updated {
		seen[w.ID] = true
	}
	added := 0
	for _, w := range ws {
		if seen[w.ID] {
			continue
		}
		seen[w.ID] = true
		updated = append(updated, w)
		added++
	}
	if added == 0 {
		return 0, nil
	}
	if err := r.persist(updated); err != nil {
		return 0, err
	}
	return added, nil
}

// List returns a copy of all workers in insertion order
func (r *Roster) List() []worker.Worker {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.workers)
}

// Get returns the worker with id
func (r *Roster) Get(id string) (worker.Worker, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if idx := r.indexOf(id); idx >= 0 {
		return r.workers[idx], true
	}
	return worker.Worker{}, false
}

// Len returns the number of workers
func (r *Roster) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.workers)
}

// persist saves ws and makes it the current state, the state is left untouched on failure.
// Must be called with mu held.
func (r *Roster) persist(ws []worker.Worker) error {
	if err := Save(r.kv, r.key, ws); err != nil {
		return fmt.Errorf("failed to persist roster: %w", err)
	}
	r.workers = ws
	return nil
}

func (r *Roster) indexOf(id string) int {
	return slices.IndexFunc(r.workers, func(w worker.Worker) bool { return w.ID == id })
}
