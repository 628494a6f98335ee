package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/minifeed/internal/models"
)

// Snapshot is the whole persisted state keyed by record key. Values are the
// raw JSON records; a file written by export and read back by import holds
// semantically equivalent records, though whitespace may differ.
type Snapshot map[string]json.RawMessage

// Export returns the records currently present in the repository.
func (s *Store) Export(ctx context.Context) (Snapshot, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	snap := make(Snapshot, 3)
	for _, key := range []string{AccountsKey, SessionKey, PostsKey} {
		if raw, ok := all[key]; ok && len(raw) > 0 {
			snap[key] = json.RawMessage(raw)
		}
	}
	return snap, nil
}

// Import replaces the records present in snap in a single write. Records
// absent from snap are left untouched; unknown keys are skipped. Unlike
// loading, an undecodable record is rejected so a broken file never
// overwrites good state.
func (s *Store) Import(ctx context.Context, snap Snapshot) error {
	values := make(map[string][]byte, len(snap))
	for key, raw := range snap {
		var err error
		switch key {
		case AccountsKey:
			err = json.Unmarshal(raw, &[]models.Account{})
		case PostsKey:
			err = json.Unmarshal(raw, &[]models.Post{})
		case SessionKey:
			var session *models.Session
			err = json.Unmarshal(raw, &session)
		default:
			s.logger.Debug(ctx, "skipping unknown snapshot key", "key", key)
			continue
		}
		if err != nil {
			return fmt.Errorf("import %s: %w", key, err)
		}
		values[key] = []byte(raw)
	}
	if len(values) == 0 {
		return nil
	}
	if err := s.repo.SetMany(ctx, values); err != nil {
		return fmt.Errorf("import: %w", err)
	}
	s.logger.Info(ctx, "snapshot imported", "records", len(values))
	return nil
}
