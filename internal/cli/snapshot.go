package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/minifeed/internal/filex"
	"github.com/dmitrijs2005/minifeed/internal/store"
)

// Export writes all stored records to path as one JSON object keyed by
// record key.
func (a *App) Export(ctx context.Context, path string) error {
	snap, err := a.core.Export(ctx)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := filex.WriteFile(path, data); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Exported %d records to %s\n", len(snap), path)
	return nil
}

// Import loads a file written by Export. Records in the file replace the
// stored ones, and the signed-in user becomes whoever the imported session
// names.
func (a *App) Import(ctx context.Context, path string) error {
	data, err := filex.ReadFile(path)
	if err != nil {
		return err
	}

	var snap store.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	if err := a.core.Import(ctx, snap); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Imported %d records from %s\n", len(snap), path)
	return nil
}
