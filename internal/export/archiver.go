package export

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/craftplan/backend-go/internal/domain"
	"github.com/craftplan/backend-go/internal/storage"
)

// Archiver pushes exported plans into object storage so past plans stay
// auditable after the next recomputation overwrites the live view.
type Archiver struct {
	store  storage.ObjectStorage
	prefix string
	now    func() time.Time
}

func NewArchiver(store storage.ObjectStorage, prefix string) *Archiver {
	return &Archiver{store: store, prefix: prefix, now: time.Now}
}

// Archive renders the plan to CSV and uploads it under a timestamped key.
// Returns the object key.
func (a *Archiver) Archive(ctx context.Context, items []domain.ReplenishmentItem) (string, error) {
	var buf bytes.Buffer
	if err := WritePlanCSV(&buf, items); err != nil {
		return "", fmt.Errorf("render plan for archive: %w", err)
	}

	key := path.Join(a.prefix, a.now().UTC().Format("2006/01/02"),
		fmt.Sprintf("plan-%s.csv", a.now().UTC().Format("150405")))

	if err := a.store.UploadObject(ctx, key, buf.Bytes()); err != nil {
		return "", fmt.Errorf("archive plan: %w", err)
	}

	log.Info().
		Str("key", key).
		Int("items", len(items)).
		Msg("replenishment plan archived")

	return key, nil
}
