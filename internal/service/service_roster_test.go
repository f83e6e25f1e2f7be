// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/influence-roster/internal/logger"
	"github.com/MKhiriev/influence-roster/internal/mock"
	"github.com/MKhiriev/influence-roster/internal/validators"
	"github.com/MKhiriev/influence-roster/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ─────────────────────────────────────────────
// Fakes
// ─────────────────────────────────────────────

// memoryBackend keeps the last saved document in memory.
type memoryBackend struct {
	mu      sync.Mutex
	records []models.ProfileRecord
	saves   int
	failErr error
	closed  bool
}

func (b *memoryBackend) Load(ctx context.Context) ([]models.ProfileRecord, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.ProfileRecord(nil), b.records...), nil
}

func (b *memoryBackend) Save(ctx context.Context, records []models.ProfileRecord) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failErr != nil {
		return b.failErr
	}
	b.records = append([]models.ProfileRecord(nil), records...)
	b.saves++
	return nil
}

func (b *memoryBackend) Export(ctx context.Context) ([]byte, error) {
	return []byte("[]"), nil
}

func (b *memoryBackend) Close() error {
	b.closed = true
	return nil
}

func (b *memoryBackend) fail(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failErr = err
}

// recordingNotifier keeps every published event.
type recordingNotifier struct {
	mu     sync.Mutex
	events []models.RosterEvent
}

func (n *recordingNotifier) Notify(ctx context.Context, event models.RosterEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) last() models.RosterEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.events[len(n.events)-1]
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.events)
}

type sequentialIDs struct {
	mu   sync.Mutex
	next int
}

func (g *sequentialIDs) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("id-%d", g.next)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func newTestRoster(t *testing.T, records ...models.ProfileRecord) (*rosterService, *memoryBackend, *recordingNotifier) {
	t.Helper()
	backend := &memoryBackend{records: records}
	notifier := &recordingNotifier{}
	s, err := newRosterService(context.Background(), backend, notifier, &sequentialIDs{}, time.Second, logger.Nop())
	require.NoError(t, err)
	return s, backend, notifier
}

func mustFields(t *testing.T, raw map[string]any) models.ProfileFields {
	t.Helper()
	f, err := validators.ParseProfileFields(raw)
	require.NoError(t, err)
	return f
}

func texts(items []models.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Text
	}
	return out
}

func flags(items []models.Item) []bool {
	out := make([]bool, len(items))
	for i, it := range items {
		out[i] = it.Revealed
	}
	return out
}

// ─────────────────────────────────────────────
// Construction
// ─────────────────────────────────────────────

func TestNewRosterService_EmptyBackend_PublishesRevisionZero(t *testing.T) {
	s, _, notifier := newTestRoster(t)

	assert.Empty(t, s.List(context.Background()))
	assert.Equal(t, uint64(0), s.Revision())
	require.Equal(t, 1, notifier.count())
	assert.Equal(t, uint64(0), notifier.last().Revision)
	assert.Equal(t, models.EventProfilesUpdated, notifier.last().Name)
}

func TestNewRosterService_AssignsMissingAndDuplicateIDs(t *testing.T) {
	s, backend, _ := newTestRoster(t,
		models.ProfileRecord{Name: "no id"},
		models.ProfileRecord{ID: "keep", Name: "first"},
		models.ProfileRecord{ID: "keep", Name: "duplicate"},
	)

	profiles := s.List(context.Background())
	require.Len(t, profiles, 3)
	assert.NotEmpty(t, profiles[0].ID)
	assert.Equal(t, "keep", profiles[1].ID)
	assert.NotEqual(t, "keep", profiles[2].ID)
	assert.NotEqual(t, profiles[0].ID, profiles[2].ID)

	// upgraded IDs are written back
	assert.Equal(t, 1, backend.saves)
	assert.Equal(t, profiles[0].ID, backend.records[0].ID)
}

func TestNewRosterService_LoadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mock.NewMockPersistenceBackend(ctrl)
	notifier := mock.NewMockNotifier(ctrl)

	backend.EXPECT().Load(gomock.Any()).Return(nil, errors.New("disk gone"))

	s, err := newRosterService(context.Background(), backend, notifier, &sequentialIDs{}, time.Second, logger.Nop())

	require.Error(t, err)
	assert.Nil(t, s)
}

func TestNewRosterService_LegacyRecord(t *testing.T) {
	s, _, _ := newTestRoster(t, models.ProfileRecord{
		ID:             "a",
		Name:           "Old",
		Biases:         []models.RecordItem{{Text: "Greedy"}, {Text: "Proud"}},
		LegacyRevealed: map[string][]bool{"biases": {false, true}},
	})

	p := s.List(context.Background())[0]
	assert.Equal(t, []bool{false, true}, flags(p.Biases))
	assert.Equal(t, 1, p.SuccessesNeeded)
}

// ─────────────────────────────────────────────
// Create
// ─────────────────────────────────────────────

func TestCreate_Defaults(t *testing.T) {
	s, backend, notifier := newTestRoster(t)
	ctx := context.Background()

	index, created, err := s.Create(ctx, mustFields(t, map[string]any{
		"name":   "Lord Vance",
		"biases": "Classist; Elitist",
	}))

	require.NoError(t, err)
	assert.Equal(t, 0, index)
	assert.Equal(t, "Lord Vance", created.Name)
	assert.Equal(t, 0, created.InfluenceSuccesses)
	assert.Equal(t, 1, created.SuccessesNeeded)
	assert.Equal(t, []string{"Classist", "Elitist"}, texts(created.Biases))
	assert.Equal(t, []bool{false, false}, flags(created.Biases))
	assert.Empty(t, created.Strengths)
	assert.NotEmpty(t, created.ID)

	assert.Equal(t, uint64(1), s.Revision())
	assert.Len(t, backend.records, 1)
	assert.Equal(t, uint64(1), notifier.last().Revision)
	assert.Equal(t, []string{}, notifier.last().Player[0].Biases)
}

func TestCreate_ExplicitRevealFlags(t *testing.T) {
	s, _, _ := newTestRoster(t)

	_, created, err := s.Create(context.Background(), mustFields(t, map[string]any{
		"name": "Mara",
		"strengths": []any{
			map[string]any{"text": "Loyal", "revealed": true},
			"Brave",
		},
	}))

	require.NoError(t, err)
	assert.Equal(t, []bool{true, false}, flags(created.Strengths))
}

func TestCreate_ReturnedProfileDoesNotAliasState(t *testing.T) {
	s, _, _ := newTestRoster(t)
	ctx := context.Background()

	_, created, err := s.Create(ctx, mustFields(t, map[string]any{"biases": "A;B"}))
	require.NoError(t, err)

	created.Biases[0].Revealed = true
	created.Name = "changed"

	stored := s.List(ctx)[0]
	assert.False(t, stored.Biases[0].Revealed)
	assert.Empty(t, stored.Name)
}

// ─────────────────────────────────────────────
// Update
// ─────────────────────────────────────────────

func TestUpdate_LongerList_KeepsPriorFlagsByPosition(t *testing.T) {
	s, _, _ := newTestRoster(t)
	ctx := context.Background()

	_, created, err := s.Create(ctx, mustFields(t, map[string]any{"biases": "A;B"}))
	require.NoError(t, err)
	_, err = s.ToggleReveal(ctx, models.RefByID(created.ID), models.Biases, 1)
	require.NoError(t, err)

	updated, err := s.Update(ctx, models.RefByIndex(0), mustFields(t, map[string]any{"biases": "A;B2;C"}))

	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B2", "C"}, texts(updated.Biases))
	assert.Equal(t, []bool{false, true, false}, flags(updated.Biases))
}

func TestUpdate_ShorterList_Truncates(t *testing.T) {
	s, _, _ := newTestRoster(t)
	ctx := context.Background()

	_, _, err := s.Create(ctx, mustFields(t, map[string]any{"weaknesses": "A;B;C"}))
	require.NoError(t, err)
	_, err = s.ToggleReveal(ctx, models.RefByIndex(0), models.Weaknesses, 0)
	require.NoError(t, err)

	updated, err := s.Update(ctx, models.RefByIndex(0), mustFields(t, map[string]any{"weaknesses": "X"}))

	require.NoError(t, err)
	assert.Equal(t, []string{"X"}, texts(updated.Weaknesses))
	assert.Equal(t, []bool{true}, flags(updated.Weaknesses))
}

func TestUpdate_AbsentFieldsUnchanged(t *testing.T) {
	s, _, _ := newTestRoster(t)
	ctx := context.Background()

	_, _, err := s.Create(ctx, mustFields(t, map[string]any{
		"name":             "Vance",
		"goal":             "Power",
		"successes_needed": 4,
		"strengths":        "Rich",
	}))
	require.NoError(t, err)

	updated, err := s.Update(ctx, models.RefByIndex(0), mustFields(t, map[string]any{"name": "Lord Vance"}))

	require.NoError(t, err)
	assert.Equal(t, "Lord Vance", updated.Name)
	assert.Equal(t, "Power", updated.Goal)
	assert.Equal(t, 4, updated.SuccessesNeeded)
	assert.Equal(t, []string{"Rich"}, texts(updated.Strengths))
}

func TestUpdate_NotFound(t *testing.T) {
	s, _, notifier := newTestRoster(t)

	_, err := s.Update(context.Background(), models.RefByIndex(3), models.ProfileFields{})

	require.ErrorIs(t, err, ErrProfileNotFound)
	assert.Equal(t, 1, notifier.count(), "failed mutation must not publish")
}

// ─────────────────────────────────────────────
// ToggleReveal
// ─────────────────────────────────────────────

func TestToggleReveal_TwiceRestoresState(t *testing.T) {
	s, _, _ := newTestRoster(t)
	ctx := context.Background()

	_, created, err := s.Create(ctx, mustFields(t, map[string]any{"influence_skills": "Flattery;Bribes"}))
	require.NoError(t, err)

	first, err := s.ToggleReveal(ctx, models.RefByIndex(0), models.InfluenceSkills, 1)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true}, flags(first.InfluenceSkills))

	second, err := s.ToggleReveal(ctx, models.RefByIndex(0), models.InfluenceSkills, 1)
	require.NoError(t, err)
	assert.Equal(t, created.InfluenceSkills, second.InfluenceSkills)
	assert.Equal(t, uint64(3), s.Revision())
}

func TestToggleReveal_Errors(t *testing.T) {
	s, _, _ := newTestRoster(t)
	ctx := context.Background()
	_, _, err := s.Create(ctx, mustFields(t, map[string]any{"biases": "A"}))
	require.NoError(t, err)

	tests := []struct {
		name     string
		ref      models.ProfileRef
		category models.Category
		index    int
		want     error
	}{
		{"unknown category", models.RefByIndex(0), models.Category("secrets"), 0, ErrUnknownCategory},
		{"index past end", models.RefByIndex(0), models.Biases, 1, ErrItemIndexOutOfRange},
		{"negative index", models.RefByIndex(0), models.Biases, -1, ErrItemIndexOutOfRange},
		{"empty category list", models.RefByIndex(0), models.Strengths, 0, ErrItemIndexOutOfRange},
		{"missing profile", models.RefByIndex(5), models.Biases, 0, ErrProfileNotFound},
		{"missing profile id", models.RefByID("nope"), models.Biases, 0, ErrProfileNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.ToggleReveal(ctx, tt.ref, tt.category, tt.index)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Equal(t, uint64(1), s.Revision())
}

// ─────────────────────────────────────────────
// Counters
// ─────────────────────────────────────────────

func TestIncrementSuccess_NotClamped(t *testing.T) {
	s, _, _ := newTestRoster(t)
	ctx := context.Background()
	_, _, err := s.Create(ctx, mustFields(t, map[string]any{"successes_needed": 1}))
	require.NoError(t, err)

	for range 3 {
		_, err = s.IncrementSuccess(ctx, models.RefByIndex(0))
		require.NoError(t, err)
	}

	_, p, err := s.Get(ctx, models.RefByIndex(0))
	require.NoError(t, err)
	assert.Equal(t, 3, p.InfluenceSuccesses)

	reset, err := s.ResetSuccess(ctx, models.RefByIndex(0))
	require.NoError(t, err)
	assert.Equal(t, 0, reset.InfluenceSuccesses)
	assert.Equal(t, 1, reset.SuccessesNeeded)
}

// ─────────────────────────────────────────────
// Delete and references
// ─────────────────────────────────────────────

func TestDelete_ShiftsIndexesButNotIDs(t *testing.T) {
	s, _, _ := newTestRoster(t)
	ctx := context.Background()

	_, first, err := s.Create(ctx, mustFields(t, map[string]any{"name": "A"}))
	require.NoError(t, err)
	_, second, err := s.Create(ctx, mustFields(t, map[string]any{"name": "B"}))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, models.RefByID(first.ID)))

	i, p, err := s.Get(ctx, models.RefByID(second.ID))
	require.NoError(t, err)
	assert.Equal(t, 0, i)
	assert.Equal(t, "B", p.Name)

	assert.ErrorIs(t, s.Delete(ctx, models.RefByID(first.ID)), ErrProfileNotFound)
	assert.ErrorIs(t, s.Delete(ctx, models.RefByIndex(1)), ErrProfileNotFound)
}

func TestResolve_IDWinsOverIndex(t *testing.T) {
	profiles := []models.Profile{models.NewProfile("a"), models.NewProfile("b")}

	i, err := resolve(profiles, models.ProfileRef{ID: "b", Index: 0})

	require.NoError(t, err)
	assert.Equal(t, 1, i)
}

// ─────────────────────────────────────────────
// Persistence
// ─────────────────────────────────────────────

func TestMutation_PersistenceFailureLeavesMemoryUnchanged(t *testing.T) {
	s, backend, notifier := newTestRoster(t)
	ctx := context.Background()
	_, _, err := s.Create(ctx, mustFields(t, map[string]any{"name": "A", "biases": "X"}))
	require.NoError(t, err)
	before := s.List(ctx)
	events := notifier.count()

	backend.fail(errors.New("read-only filesystem"))

	_, err = s.ToggleReveal(ctx, models.RefByIndex(0), models.Biases, 0)
	require.ErrorIs(t, err, ErrPersistence)
	_, _, err = s.Create(ctx, mustFields(t, map[string]any{"name": "B"}))
	require.ErrorIs(t, err, ErrPersistence)
	require.ErrorIs(t, s.Delete(ctx, models.RefByIndex(0)), ErrPersistence)

	assert.Equal(t, before, s.List(ctx))
	assert.Equal(t, uint64(1), s.Revision())
	assert.Equal(t, events, notifier.count())
}

func TestMutation_SaveIsDetachedFromRequestCancellation(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mock.NewMockPersistenceBackend(ctrl)
	notifier := mock.NewMockNotifier(ctrl)

	backend.EXPECT().Load(gomock.Any()).Return(nil, nil)
	notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Times(2)
	backend.EXPECT().Save(gomock.Any(), gomock.Len(1)).
		DoAndReturn(func(ctx context.Context, records []models.ProfileRecord) error {
			assert.NoError(t, ctx.Err())
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			return nil
		})

	s, err := newRosterService(context.Background(), backend, notifier, &sequentialIDs{}, time.Second, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err = s.Create(ctx, models.ProfileFields{})
	require.NoError(t, err)
}

func TestMutation_RevisionsPublishedInOrder(t *testing.T) {
	s, _, notifier := newTestRoster(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := s.Create(ctx, models.ProfileFields{})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	require.Equal(t, 21, notifier.count())
	for i, e := range notifier.events {
		assert.Equal(t, uint64(i), e.Revision)
		assert.Len(t, e.Master, i)
	}
}

func TestClose_FlushesAndClosesBackend(t *testing.T) {
	s, backend, _ := newTestRoster(t, models.ProfileRecord{ID: "a", Name: "A"})
	saves := backend.saves

	require.NoError(t, s.Close(context.Background()))

	assert.Equal(t, saves+1, backend.saves)
	assert.True(t, backend.closed)
	assert.Equal(t, "A", backend.records[0].Name)
}

func TestExport_WrapsBackendError(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mock.NewMockPersistenceBackend(ctrl)
	notifier := mock.NewMockNotifier(ctrl)

	backend.EXPECT().Load(gomock.Any()).Return(nil, nil)
	notifier.EXPECT().Notify(gomock.Any(), gomock.Any())
	backend.EXPECT().Export(gomock.Any()).Return(nil, errors.New("boom"))

	s, err := newRosterService(context.Background(), backend, notifier, &sequentialIDs{}, 0, logger.Nop())
	require.NoError(t, err)

	_, err = s.Export(context.Background())
	assert.ErrorIs(t, err, ErrPersistence)
}

// ─────────────────────────────────────────────
// Photo reference
// ─────────────────────────────────────────────

func TestSetPhoto_ReturnsPreviousID(t *testing.T) {
	s, _, _ := newTestRoster(t)
	ctx := context.Background()
	_, _, err := s.Create(ctx, mustFields(t, map[string]any{"photo_id": "old.png"}))
	require.NoError(t, err)

	p, previous, err := s.SetPhoto(ctx, models.RefByIndex(0), "new.png")

	require.NoError(t, err)
	assert.Equal(t, "old.png", previous)
	assert.Equal(t, "new.png", p.PhotoID)
}

// ─────────────────────────────────────────────
// Views
// ─────────────────────────────────────────────

func TestPlayerView_ClassistElitistScenario(t *testing.T) {
	s, _, notifier := newTestRoster(t)
	ctx := context.Background()

	_, _, err := s.Create(ctx, mustFields(t, map[string]any{
		"name":   "Lord Vance",
		"biases": "Classist;Elitist",
	}))
	require.NoError(t, err)
	assert.Empty(t, s.PlayerView(ctx)[0].Biases)

	_, err = s.ToggleReveal(ctx, models.RefByIndex(0), models.Biases, 1)
	require.NoError(t, err)

	assert.Equal(t, []string{"Elitist"}, s.PlayerView(ctx)[0].Biases)
	assert.Equal(t, []bool{false, true}, flags(s.MasterView(ctx)[0].Biases))

	event := notifier.last()
	assert.Equal(t, []string{"Elitist"}, event.Player[0].Biases)
	assert.Equal(t, "Lord Vance", event.Player[0].Name)
}
