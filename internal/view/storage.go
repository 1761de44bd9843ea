package view

import (
	"context"
	"log"

	"github.com/dustin/go-humanize"

	apperrors "github.com/nhle/studentpro/internal/errors"
	"github.com/nhle/studentpro/internal/model"
)

// NoSize is shown for files without a recorded size.
const NoSize = "—"

// FormatSize renders a byte count in 1024 units, e.g. "1.5 KiB".
func FormatSize(n int64) string {
	if n <= 0 {
		return NoSize
	}
	return humanize.IBytes(uint64(n))
}

// Storage lists the user's files.
type Storage struct {
	state
	files []model.StorageFile
}

// NewStorage creates an idle storage view.
func NewStorage(deps Deps) *Storage {
	return &Storage{state: state{deps: deps}}
}

// Load fetches the profile and the files together.
func (v *Storage) Load(ctx context.Context) error {
	ctx, gen, sess, ok := v.begin(ctx)
	if !ok {
		return nil
	}

	res := fetchJoined(ctx, v.deps.API, sess.UserID, v.deps.API.ListFiles)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err := v.stale(ctx, gen); err != nil {
		return err
	}
	if err := v.finishProfile(ctx, res.profile, res.profileErr); err != nil {
		v.files = nil
		return err
	}
	if res.itemsErr != nil {
		log.Printf("view: loading files: %v", res.itemsErr)
		v.err = apperrors.NewFetchError("files", "Failed to load files", res.itemsErr)
		return nil
	}
	v.files = res.items
	return nil
}

// Files returns a copy of the loaded files.
func (v *Storage) Files() []model.StorageFile {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]model.StorageFile(nil), v.files...)
}

// Filter returns the files whose name contains query.
func (v *Storage) Filter(query string) []model.StorageFile {
	return FilterByName(v.Files(), query)
}
