// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/influence-roster/internal/broadcast"
	"github.com/MKhiriev/influence-roster/internal/config"
	"github.com/MKhiriev/influence-roster/internal/logger"
	"github.com/MKhiriev/influence-roster/internal/store"
	"github.com/MKhiriev/influence-roster/internal/utils"
	"github.com/MKhiriev/influence-roster/models"
)

// rosterService is the authoritative in-memory roster.
//
// writeMu serializes mutations end to end (clone, save, swap, notify), so
// revisions are published in order. stateMu guards the published slice for
// readers; a published slice is never modified in place.
type rosterService struct {
	writeMu sync.Mutex

	stateMu  sync.RWMutex
	profiles []models.Profile
	revision uint64

	backend        store.PersistenceBackend
	notifier       broadcast.Notifier
	ids            utils.IDGenerator
	persistTimeout time.Duration

	logger *logger.Logger
}

// NewRosterService loads the roster from backend and publishes it as
// revision 0. Records without an ID (older documents) get one, and the
// upgraded roster is written back.
func NewRosterService(ctx context.Context, backend store.PersistenceBackend, notifier broadcast.Notifier, cfg config.Storage, logger *logger.Logger) (RosterService, error) {
	return newRosterService(ctx, backend, notifier, utils.NewUUIDGenerator(), cfg.PersistTimeout, logger)
}

func newRosterService(
	ctx context.Context,
	backend store.PersistenceBackend,
	notifier broadcast.Notifier,
	ids utils.IDGenerator,
	persistTimeout time.Duration,
	logger *logger.Logger,
) (*rosterService, error) {
	records, err := backend.Load(ctx)
	if err != nil {
		logger.Err(err).Str("func", "NewRosterService").Msg("failed to load roster")
		return nil, fmt.Errorf("error loading roster: %w", err)
	}

	s := &rosterService{
		backend:        backend,
		notifier:       notifier,
		ids:            ids,
		persistTimeout: persistTimeout,
		logger:         logger,
	}

	profiles := make([]models.Profile, len(records))
	seen := make(map[string]struct{}, len(records))
	upgraded := false
	for i, r := range records {
		profiles[i] = r.ToProfile()
		if _, dup := seen[profiles[i].ID]; profiles[i].ID == "" || dup {
			profiles[i].ID = ids.Generate()
			upgraded = true
		}
		seen[profiles[i].ID] = struct{}{}
	}
	s.profiles = profiles

	if upgraded {
		if err = s.save(ctx, profiles); err != nil {
			// the IDs are regenerated on the next start; the roster itself is intact
			logger.Warn().Err(err).Str("func", "NewRosterService").Msg("failed to write back profile IDs")
		}
	}

	logger.Info().Str("func", "NewRosterService").Int("profiles", len(profiles)).Msg("roster loaded")

	s.notifier.Notify(ctx, newRosterEvent(profiles, 0))
	return s, nil
}

func (s *rosterService) List(ctx context.Context) []models.Profile {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return models.CloneProfiles(s.profiles)
}

func (s *rosterService) MasterView(ctx context.Context) []models.MasterProfile {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return ToMasterViews(s.profiles)
}

func (s *rosterService) PlayerView(ctx context.Context) []models.PlayerProfile {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return ToPlayerViews(s.profiles)
}

func (s *rosterService) Get(ctx context.Context, ref models.ProfileRef) (int, models.Profile, error) {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()

	i, err := resolve(s.profiles, ref)
	if err != nil {
		return -1, models.Profile{}, err
	}
	return i, s.profiles[i].Clone(), nil
}

func (s *rosterService) Revision() uint64 {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.revision
}

// Create appends a new profile. Absent counters default to 0 successes of 1
// needed; every item starts hidden unless the input says otherwise.
func (s *rosterService) Create(ctx context.Context, fields models.ProfileFields) (int, models.Profile, error) {
	var (
		index   int
		created models.Profile
	)
	err := s.mutate(ctx, "create", func(profiles []models.Profile) ([]models.Profile, error) {
		created = models.NewProfile(s.ids.Generate())
		applyFields(&created, fields)
		index = len(profiles)
		return append(profiles, created), nil
	})
	if err != nil {
		return -1, models.Profile{}, err
	}
	return index, created.Clone(), nil
}

// Update applies the present fields of fields to the referenced profile.
// A replaced item list keeps the reveal flag of every position that existed
// before.
func (s *rosterService) Update(ctx context.Context, ref models.ProfileRef, fields models.ProfileFields) (models.Profile, error) {
	return s.mutateOne(ctx, "update", ref, func(p *models.Profile) error {
		applyFields(p, fields)
		return nil
	})
}

func (s *rosterService) Delete(ctx context.Context, ref models.ProfileRef) error {
	return s.mutate(ctx, "delete", func(profiles []models.Profile) ([]models.Profile, error) {
		i, err := resolve(profiles, ref)
		if err != nil {
			return nil, err
		}
		return append(profiles[:i], profiles[i+1:]...), nil
	})
}

func (s *rosterService) ToggleReveal(ctx context.Context, ref models.ProfileRef, category models.Category, itemIndex int) (models.Profile, error) {
	if !category.Valid() {
		return models.Profile{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	return s.mutateOne(ctx, "toggle_reveal", ref, func(p *models.Profile) error {
		items := p.Items(category)
		if itemIndex < 0 || itemIndex >= len(items) {
			return fmt.Errorf("%w: %s[%d]", ErrItemIndexOutOfRange, category, itemIndex)
		}
		items[itemIndex].Revealed = !items[itemIndex].Revealed
		return nil
	})
}

func (s *rosterService) IncrementSuccess(ctx context.Context, ref models.ProfileRef) (models.Profile, error) {
	return s.mutateOne(ctx, "increment_success", ref, func(p *models.Profile) error {
		p.InfluenceSuccesses++
		return nil
	})
}

func (s *rosterService) ResetSuccess(ctx context.Context, ref models.ProfileRef) (models.Profile, error) {
	return s.mutateOne(ctx, "reset_success", ref, func(p *models.Profile) error {
		p.InfluenceSuccesses = 0
		return nil
	})
}

func (s *rosterService) SetPhoto(ctx context.Context, ref models.ProfileRef, photoID string) (models.Profile, string, error) {
	var previous string
	updated, err := s.mutateOne(ctx, "set_photo", ref, func(p *models.Profile) error {
		previous = p.PhotoID
		p.PhotoID = photoID
		return nil
	})
	if err != nil {
		return models.Profile{}, "", err
	}
	return updated, previous, nil
}

func (s *rosterService) Export(ctx context.Context) ([]byte, error) {
	raw, err := s.backend.Export(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*rosterService.Export").Msg("failed to export roster")
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return raw, nil
}

// Close writes the current roster one last time and closes the backend.
func (s *rosterService) Close(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.stateMu.RLock()
	current := s.profiles
	s.stateMu.RUnlock()

	saveErr := s.save(ctx, current)
	if saveErr != nil {
		s.logger.Err(saveErr).Str("func", "*rosterService.Close").Msg("final roster flush failed")
	}
	if err := s.backend.Close(); err != nil {
		return fmt.Errorf("error closing persistence backend: %w", err)
	}
	return saveErr
}

// mutateOne runs apply on the referenced profile inside a mutation and
// returns a copy of the result.
func (s *rosterService) mutateOne(ctx context.Context, op string, ref models.ProfileRef, apply func(p *models.Profile) error) (models.Profile, error) {
	var result models.Profile
	err := s.mutate(ctx, op, func(profiles []models.Profile) ([]models.Profile, error) {
		i, err := resolve(profiles, ref)
		if err != nil {
			return nil, err
		}
		if err = apply(&profiles[i]); err != nil {
			return nil, err
		}
		result = profiles[i]
		return profiles, nil
	})
	if err != nil {
		return models.Profile{}, err
	}
	return result.Clone(), nil
}

// mutate applies change to a private copy of the roster, persists the copy
// and only then publishes it. Errors from change or from the backend leave
// the published roster untouched.
func (s *rosterService) mutate(ctx context.Context, op string, change func([]models.Profile) ([]models.Profile, error)) error {
	log := logger.FromContext(ctx)

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.stateMu.RLock()
	next := models.CloneProfiles(s.profiles)
	s.stateMu.RUnlock()

	next, err := change(next)
	if err != nil {
		return err
	}

	if err = s.save(ctx, next); err != nil {
		log.Err(err).Str("func", "*rosterService.mutate").Str("op", op).Msg("roster mutation not persisted")
		return err
	}

	s.stateMu.Lock()
	s.profiles = next
	s.revision++
	revision := s.revision
	s.stateMu.Unlock()

	log.Debug().
		Str("func", "*rosterService.mutate").
		Str("op", op).
		Uint64("revision", revision).
		Int("profiles", len(next)).
		Msg("roster updated")

	s.notifier.Notify(ctx, newRosterEvent(next, revision))
	return nil
}

// save persists profiles within the persist timeout. The save is detached
// from ctx cancellation so a dropped request cannot abort a write half way.
func (s *rosterService) save(ctx context.Context, profiles []models.Profile) error {
	saveCtx := context.WithoutCancel(ctx)
	if s.persistTimeout > 0 {
		var cancel context.CancelFunc
		saveCtx, cancel = context.WithTimeout(saveCtx, s.persistTimeout)
		defer cancel()
	}

	if err := s.backend.Save(saveCtx, models.NewProfileRecords(profiles)); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

func newRosterEvent(profiles []models.Profile, revision uint64) models.RosterEvent {
	return models.RosterEvent{
		Name:     models.EventProfilesUpdated,
		Revision: revision,
		Master:   ToMasterViews(profiles),
		Player:   ToPlayerViews(profiles),
	}
}

// resolve turns ref into a position in profiles. An ID reference wins over
// the index.
func resolve(profiles []models.Profile, ref models.ProfileRef) (int, error) {
	if ref.ID != "" {
		for i := range profiles {
			if profiles[i].ID == ref.ID {
				return i, nil
			}
		}
		return -1, fmt.Errorf("%w: id %s", ErrProfileNotFound, ref.ID)
	}
	if ref.Index < 0 || ref.Index >= len(profiles) {
		return -1, fmt.Errorf("%w: index %d", ErrProfileNotFound, ref.Index)
	}
	return ref.Index, nil
}

// applyFields copies every present field of f onto p.
func applyFields(p *models.Profile, f models.ProfileFields) {
	setString(&p.Name, f.Name)
	setString(&p.Appearance, f.Appearance)
	setString(&p.Background, f.Background)
	setString(&p.Personality, f.Personality)
	setString(&p.Attitude, f.Attitude)
	setString(&p.Goal, f.Goal)
	setString(&p.Benefit, f.Benefit)
	setString(&p.Special, f.Special)
	setString(&p.PhotoID, f.PhotoID)

	if f.InfluenceSuccesses != nil {
		p.InfluenceSuccesses = *f.InfluenceSuccesses
	}
	if f.SuccessesNeeded != nil {
		p.SuccessesNeeded = *f.SuccessesNeeded
	}

	for _, c := range models.Categories {
		in, ok := f.Items[c]
		if !ok {
			continue
		}
		p.SetItems(c, rebuildItems(p.Items(c), in))
	}
}

// rebuildItems replaces an item list. Position i keeps its previous reveal
// flag when it existed before; an explicit flag in the input wins; new
// positions start hidden.
func rebuildItems(prior []models.Item, in []models.ItemInput) []models.Item {
	out := make([]models.Item, len(in))
	for i, it := range in {
		revealed := false
		if i < len(prior) {
			revealed = prior[i].Revealed
		}
		if it.Revealed != nil {
			revealed = *it.Revealed
		}
		out[i] = models.Item{Text: it.Text, Revealed: revealed}
	}
	return out
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
