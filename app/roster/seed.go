package roster

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/umputun/crewbook/app/worker"
)

// ReadSeed decodes a YAML list of worker records, the same shape /api/v1/export produces
func ReadSeed(r io.Reader) ([]worker.Worker, error) {
	var recs []worker.Fields
	if err := yaml.NewDecoder(r).Decode(&recs); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decode seed: %w", err)
	}
	res := make([]worker.Worker, 0, len(recs))
	for _, f := range recs {
		if f == nil {
			continue
		}
		res = append(res, worker.Revive(f))
	}
	return res, nil
}

// SeedFile imports workers from a YAML file into the roster, ids already present are skipped
func SeedFile(r *Roster, path string) (int, error) {
	fh, err := os.Open(path) //nolint:gosec // seed path comes from the command line
	if err != nil {
		return 0, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer fh.Close()

	ws, err := ReadSeed(fh)
	if err != nil {
		return 0, fmt.Errorf("failed to read seed %s: %w", path, err)
	}
	return r.Import(ws)
}

// WriteYAML encodes workers as a YAML list of records, readable by ReadSeed
func WriteYAML(w io.Writer, ws []worker.Worker) error {
	recs := make([]worker.Record, 0, len(ws))
	for _, wr := range ws {
		recs = append(recs, worker.Serialize(wr))
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(recs); err != nil {
		return fmt.Errorf("failed to encode workers: %w", err)
	}
	return enc.Close()
}
