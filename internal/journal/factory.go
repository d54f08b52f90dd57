package journal

import (
	"fmt"
	"os"
	"path/filepath"

	"bulkrename/internal/config"
	"bulkrename/internal/rename"
)

// FileName is the journal database name inside the configured data directory.
const FileName = "journal.db"

// NewJournalFromConfig creates a Journal implementation based on the journal config type.
func NewJournalFromConfig(cfg config.JournalConfig) (rename.Journal, error) {
	switch cfg.Type {
	case config.JournalSQLite:
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite journal")
		}
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("creating journal directory: %w", err)
		}
		return NewSQLiteJournal(filepath.Join(cfg.DataDir, FileName))
	case config.JournalMemory:
		return NewSQLiteJournal(":memory:")
	case config.JournalNone, "":
		return rename.NopJournal{}, nil
	default:
		return nil, fmt.Errorf("unknown journal type: %s", cfg.Type)
	}
}
