package roster

import (
	"fmt"
	"strings"

	log "github.com/go-pkgz/lgr"
)

// BackupSuffix is appended to the storage key to keep a copy of undecodable roster data
const BackupSuffix = ".corrupted"

// Store is a KV which can also list and remove keys
type Store interface {
	KV
	Keys() ([]string, error)
	Delete(key string) error
}

// Backups returns keys holding copies of undecodable roster data
func Backups(s Store) ([]string, error) {
	keys, err := s.Keys()
	if err != nil {
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}
	res := []string{}
	for _, k := range keys {
		if strings.HasSuffix(k, BackupSuffix) {
			res = append(res, k)
		}
	}
	return res, nil
}

// DropBackups removes all copies of undecodable roster data and returns the removed keys
func DropBackups(s Store) ([]string, error) {
	keys, err := Backups(s)
	if err != nil {
		return nil, err
	}
	for i, k := range keys {
		if err := s.Delete(k); err != nil {
			return keys[:i], fmt.Errorf("failed to drop backup %q: %w", k, err)
		}
	}
	return keys, nil
}

func backupCorrupted(kv KV, key string) error {
	raw, _, err := kv.Get(key)
	if err != nil {
		return fmt.Errorf("failed to read corrupted roster: %w", err)
	}
	if err := kv.Set(key+BackupSuffix, raw); err != nil {
		return fmt.Errorf("failed to back up corrupted roster: %w", err)
	}
	log.Printf("[WARN] unreadable roster copied to %q", key+BackupSuffix)
	return nil
}
