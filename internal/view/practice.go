package view

import (
	"context"
	"log"

	apperrors "github.com/nhle/studentpro/internal/errors"
	"github.com/nhle/studentpro/internal/model"
)

// Practice lists practice platform links. It starts with the built-in set.
type Practice struct {
	state
	links []model.PracticeLink
}

// NewPractice creates a practice view showing the defaults.
func NewPractice(deps Deps) *Practice {
	return &Practice{state: state{deps: deps}, links: model.DefaultPlatforms()}
}

// Load fetches the profile and the user's platforms together. A non-empty
// list of valid links replaces the current set; anything else keeps it.
func (v *Practice) Load(ctx context.Context) error {
	ctx, gen, sess, ok := v.begin(ctx)
	if !ok {
		return nil
	}

	res := fetchJoined(ctx, v.deps.API, sess.UserID, v.deps.API.ListPlatforms)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err := v.stale(ctx, gen); err != nil {
		return err
	}
	if err := v.finishProfile(ctx, res.profile, res.profileErr); err != nil {
		return err
	}
	if res.itemsErr != nil {
		log.Printf("view: loading practice platforms: %v", res.itemsErr)
		v.err = apperrors.NewFetchError("platforms", "Failed to load practice platforms", res.itemsErr)
		return nil
	}

	valid := make([]model.PracticeLink, 0, len(res.items))
	for _, l := range res.items {
		if l.Valid() {
			valid = append(valid, l)
		}
	}
	if len(valid) > 0 {
		v.links = valid
	}
	return nil
}

// Links returns a copy of the shown links.
func (v *Practice) Links() []model.PracticeLink {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]model.PracticeLink(nil), v.links...)
}

// Filter returns the links whose name contains query.
func (v *Practice) Filter(query string) []model.PracticeLink {
	return FilterByName(v.Links(), query)
}
