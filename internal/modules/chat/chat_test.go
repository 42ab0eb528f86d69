// README: Turn orchestrator tests (scenario, merge precedence, monotonicity, rollback).
package chat

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartdrive/internal/modules/catalog"
	"smartdrive/internal/modules/quota"
	"smartdrive/internal/modules/session"
	"smartdrive/internal/modules/slotfill"
	"smartdrive/internal/modules/slots"
)

type fillCall struct {
	message   string
	current   slots.Slots
	lastAsked slots.Name
}

// fakeFiller returns queued proposals; an empty queue yields an empty proposal.
type fakeFiller struct {
	proposals []slotfill.Proposal
	errs      []error
	calls     []fillCall
}

func (f *fakeFiller) Fill(_ context.Context, message string, current slots.Slots, lastAsked slots.Name) (slotfill.Proposal, error) {
	i := len(f.calls)
	f.calls = append(f.calls, fillCall{message, current, lastAsked})
	if i < len(f.errs) && f.errs[i] != nil {
		return slotfill.Proposal{}, f.errs[i]
	}
	if i < len(f.proposals) {
		return f.proposals[i], nil
	}
	return slotfill.Proposal{Updates: map[string]any{}}, nil
}

type denyQuota struct{ calls int }

func (q *denyQuota) Use(context.Context, string) error {
	q.calls++
	return quota.ErrQuotaExceeded
}

func testCollection() *catalog.Collection {
	return catalog.NewCollection([]catalog.Listing{
		{Brand: "Hyundai", Model: "Tucson", Price: catalog.Int(245000), Year: catalog.Int(2020), Km: catalog.Int(78000), Fuel: "diesel", Gearbox: "automatique", City: "Rabat", Type: "SUV"},
		{Brand: "Toyota", Model: "RAV4", Price: catalog.Int(340000), Year: catalog.Int(2022), Km: catalog.Int(41000), Fuel: "hybride", Gearbox: "automatique", City: "Rabat", Type: "SUV"},
		{Brand: "Kia", Model: "Sportage", Price: catalog.Int(198000), Year: catalog.Int(2018), Km: catalog.Int(115000), Fuel: "diesel", Gearbox: "automatique", City: "Rabat", Type: "SUV"},
		{Brand: "Dacia", Model: "Duster", Price: catalog.Int(165000), Year: catalog.Int(2021), Km: catalog.Int(62000), Fuel: "diesel", Gearbox: "manuelle", City: "Casablanca", Type: "SUV"},
	})
}

func newTestService(filler SlotFiller, opts Options) (*Service, *session.Store) {
	store := session.NewStore()
	return NewService(store, filler, testCollection(), opts), store
}

func TestTurn_SUVScenarioAsksFuelThenRanks(t *testing.T) {
	filler := &fakeFiller{}
	svc, store := newTestService(filler, Options{})
	ctx := context.Background()

	r, err := svc.Turn(ctx, "s1", "je veux un SUV automatique à Rabat")
	require.NoError(t, err)
	assert.False(t, r.Done)
	assert.Equal(t, slots.Fuel, r.Missing)
	assert.Equal(t, slots.Question(slots.Fuel), r.Assistant)
	assert.Equal(t, slots.Text("SUV"), r.Slots.Category)
	assert.Equal(t, slots.Text("automatique"), r.Slots.Gearbox)
	assert.Equal(t, slots.Text("Rabat"), r.Slots.City)
	assert.NotNil(t, r.Cars)
	assert.Empty(t, r.Cars)

	r, err = svc.Turn(ctx, "s1", "peu importe")
	require.NoError(t, err)
	assert.True(t, r.Slots.Fuel.IsAny())
	assert.Equal(t, slots.BudgetMax, r.Missing)

	r, err = svc.Turn(ctx, "s1", "250 000")
	require.NoError(t, err)
	assert.True(t, r.Done)
	assert.Empty(t, r.Missing)
	assert.Equal(t, MessageResults, r.Assistant)
	require.Len(t, r.Cars, 2)
	assert.Equal(t, "Hyundai", r.Cars[0].Brand)
	assert.Equal(t, "Kia", r.Cars[1].Brand)

	sess := store.GetOrCreate("s1")
	assert.Equal(t, 3, sess.Turns)
	assert.Empty(t, sess.LastAsked)

	// The model sees the extractor's result and the previously asked slot.
	require.Len(t, filler.calls, 3)
	assert.Equal(t, slots.Fuel, filler.calls[1].lastAsked)
	assert.True(t, filler.calls[1].current.Fuel.IsAny())
}

func TestTurn_AntiLoopIndifferenceResolvesAskedSlot(t *testing.T) {
	svc, store := newTestService(&fakeFiller{}, Options{})
	ctx := context.Background()

	_, err := svc.Turn(ctx, "s", "bonjour")
	require.NoError(t, err)
	require.Equal(t, slots.Category, store.GetOrCreate("s").LastAsked)

	r, err := svc.Turn(ctx, "s", "Peu importe")
	require.NoError(t, err)
	assert.True(t, r.Slots.Category.IsAny())
	assert.NotEqual(t, slots.Category, r.Missing)
	assert.Equal(t, slots.Fuel, r.Missing)
}

func TestMerge_Precedence(t *testing.T) {
	extracted := slots.Slots{Fuel: slots.Text("diesel"), City: slots.Text("Rabat"), Gearbox: slots.Text("manuelle")}

	got := Merge(extracted, map[string]any{
		"fuel":       "ANY",
		"city":       "UNSET",
		"gearbox":    "gasoil",
		"budget_max": "200 000",
		"unknown":    "x",
	})
	assert.True(t, got.Fuel.IsAny())
	assert.Equal(t, slots.Text("Rabat"), got.City)
	assert.Equal(t, slots.Text("manuelle"), got.Gearbox)
	assert.Equal(t, slots.Number(200000), got.BudgetMax)
	assert.True(t, got.Category.IsUnset())

	got = Merge(extracted, nil)
	assert.Equal(t, slots.Sanitize(extracted), got)
}

func TestTurn_CompletionIsMonotonic(t *testing.T) {
	// A model that keeps reporting UNSET must never undo resolved slots.
	regress := slotfill.Proposal{Updates: map[string]any{
		"category": "UNSET", "fuel": "UNSET", "gearbox": "UNSET", "budget_max": "UNSET", "city": "UNSET",
	}, Done: true}
	filler := &fakeFiller{proposals: []slotfill.Proposal{regress, regress, regress, regress, regress, regress}}
	svc, _ := newTestService(filler, Options{})

	messages := []string{"un SUV", "diesel svp", "bof", "automatique", "300000", "à Casablanca"}
	resolved := 0
	for i, msg := range messages {
		r, err := svc.Turn(context.Background(), "mono", msg)
		require.NoError(t, err, "turn %d", i)
		n := 0
		for _, name := range slots.Order {
			if r.Slots.Get(name).Resolved() {
				n++
			}
		}
		assert.GreaterOrEqual(t, n, resolved, "turn %d regressed", i)
		resolved = n
	}
	assert.Equal(t, len(slots.Order), resolved)
}

func TestTurn_ModelDoneFlagIsIgnored(t *testing.T) {
	filler := &fakeFiller{proposals: []slotfill.Proposal{{Updates: map[string]any{"category": "SUV"}, Done: true}}}
	svc, _ := newTestService(filler, Options{})

	r, err := svc.Turn(context.Background(), "s", "salut")
	require.NoError(t, err)
	assert.False(t, r.Done)
	assert.Equal(t, slots.Fuel, r.Missing)
}

func TestTurn_ModelFillsSeveralSlots(t *testing.T) {
	filler := &fakeFiller{proposals: []slotfill.Proposal{{Updates: map[string]any{
		"category": "SUV", "fuel": "Diesel", "gearbox": "ANY", "budget_max": 300000, "city": "rabat",
	}}}}
	svc, _ := newTestService(filler, Options{ResultLimit: 1})

	r, err := svc.Turn(context.Background(), "s", "SUV diesel à Rabat, moins de 300k, boîte peu importe")
	require.NoError(t, err)
	assert.True(t, r.Done)
	assert.Equal(t, slots.Text("diesel"), r.Slots.Fuel)
	assert.Equal(t, slots.Text("Rabat"), r.Slots.City)
	require.Len(t, r.Cars, 1)
	assert.Equal(t, "Hyundai", r.Cars[0].Brand)
}

func TestTurn_EmptyResult(t *testing.T) {
	filler := &fakeFiller{proposals: []slotfill.Proposal{{Updates: map[string]any{
		"category": "pickup", "fuel": "ANY", "gearbox": "ANY", "budget_max": "ANY", "city": "Oujda",
	}}}}
	svc, _ := newTestService(filler, Options{})

	r, err := svc.Turn(context.Background(), "s", "un pickup à Oujda")
	require.NoError(t, err)
	assert.True(t, r.Done)
	assert.Equal(t, MessageNoResults, r.Assistant)
	assert.NotNil(t, r.Cars)
	assert.Empty(t, r.Cars)
}

func TestTurn_ModelFailureLeavesSessionUntouched(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"transport", fmt.Errorf("%w: connection refused", slotfill.ErrTransport)},
		{"malformed", fmt.Errorf("%w: %w", slotfill.ErrMalformedReply, slotfill.ErrNoJSON)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filler := &fakeFiller{errs: []error{nil, tt.err}}
			svc, store := newTestService(filler, Options{})
			ctx := context.Background()

			_, err := svc.Turn(ctx, "s", "un SUV")
			require.NoError(t, err)
			before := store.GetOrCreate("s")

			r, err := svc.Turn(ctx, "s", "diesel à Rabat")
			assert.Nil(t, r)
			assert.True(t, errors.Is(err, tt.err))
			assert.Equal(t, before, store.GetOrCreate("s"))
		})
	}
}

func TestTurn_QuotaExceededSkipsModel(t *testing.T) {
	filler := &fakeFiller{}
	guard := &denyQuota{}
	svc, store := newTestService(filler, Options{Quota: guard})

	_, err := svc.Turn(context.Background(), "s", "un SUV diesel")
	assert.ErrorIs(t, err, quota.ErrQuotaExceeded)
	assert.Equal(t, 1, guard.calls)
	assert.Empty(t, filler.calls)

	sess := store.GetOrCreate("s")
	assert.Zero(t, sess.Turns)
	assert.True(t, sess.Slots.Category.IsUnset())
}

func TestTurn_RequiresSessionID(t *testing.T) {
	svc, store := newTestService(&fakeFiller{}, Options{})
	_, err := svc.Turn(context.Background(), "  ", "bonjour")
	assert.ErrorIs(t, err, ErrMissingSession)
	assert.Zero(t, store.Len())
}
