package roster

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/umputun/crewbook/app/worker"
)

// DefaultKey is the storage key the roster is kept under
const DefaultKey = "workers_entities"

// ErrCorrupted is returned by Load when the stored value can't be decoded
var ErrCorrupted = errors.New("stored workers can't be decoded")

// KV is a durable string-keyed store
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Save writes all workers as a single JSON array under key, overwriting the previous value
func Save(kv KV, key string, ws []worker.Worker) error {
	recs := make([]worker.Record, 0, len(ws))
	for _, w := range ws {
		recs = append(recs, worker.Serialize(w))
	}
	data, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("failed to encode workers: %w", err)
	}
	if err := kv.Set(key, string(data)); err != nil {
		return fmt.Errorf("failed to store workers: %w", err)
	}
	return nil
}

// Load reads workers stored under key. Missing or empty value is an empty roster, not an error.
// Each record is revived into the variant named by its kind.
func Load(kv KV, key string) ([]worker.Worker, error) {
	raw, ok, err := kv.Get(key)
	if err != nil {
		return nil, fmt.Errorf("failed to read workers: %w", err)
	}
	if !ok || raw == "" {
		return []worker.Worker{}, nil
	}

	var recs []worker.Fields
	if err := json.Unmarshal([]byte(raw), &recs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}

	res := make([]worker.Worker, 0, len(recs))
	for _, f := range recs {
		if f == nil { // null entry in the array
			continue
		}
		res = append(res, worker.Revive(f))
	}
	return res, nil
}
