// Package storagetest tiene la suite que todo meals.Repository debe pasar.
package storagetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"daily-diet/internal/domain/meals"

	"github.com/google/uuid"
)

// NewRepoFunc devuelve un repositorio vacío y aislado para cada subtest.
type NewRepoFunc func(t *testing.T) meals.Repository

func RunMealRepositoryContract(t *testing.T, newRepo NewRepoFunc) {
	t.Run("CreateThenGet", func(t *testing.T) { testCreateThenGet(t, newRepo(t)) })
	t.Run("NotFound", func(t *testing.T) { testNotFound(t, newRepo(t)) })
	t.Run("ListOrderAndScope", func(t *testing.T) { testListOrderAndScope(t, newRepo(t)) })
	t.Run("UpdateReplacesFields", func(t *testing.T) { testUpdate(t, newRepo(t)) })
	t.Run("DeleteRemoves", func(t *testing.T) { testDelete(t, newRepo(t)) })
}

var (
	base      = time.Date(2025, 12, 22, 12, 0, 0, 0, time.UTC)
	farPast   = time.Date(1600, 1, 1, 0, 0, 0, 0, time.UTC)
	farFuture = time.Date(2300, 1, 1, 0, 0, 0, 0, time.UTC)
)

func newMeal(owner string, at time.Time, onDiet bool) meals.Meal {
	return meals.Meal{
		ID:          uuid.NewString(),
		OwnerUserID: owner,
		Name:        "meal",
		Description: "desc",
		OccurredAt:  at,
		IsOnDiet:    onDiet,
		CreatedAt:   base,
		UpdatedAt:   base,
	}
}

func mustCreate(t *testing.T, repo meals.Repository, m meals.Meal) meals.Meal {
	t.Helper()
	if err := repo.Create(context.Background(), m); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	return m
}

func assertSameMeal(t *testing.T, want, got meals.Meal) {
	t.Helper()
	if got.ID != want.ID || got.OwnerUserID != want.OwnerUserID ||
		got.Name != want.Name || got.Description != want.Description ||
		got.IsOnDiet != want.IsOnDiet ||
		!got.OccurredAt.Equal(want.OccurredAt) ||
		!got.CreatedAt.Equal(want.CreatedAt) || !got.UpdatedAt.Equal(want.UpdatedAt) {
		t.Fatalf("meal mismatch:\nwant %+v\ngot  %+v", want, got)
	}
}

func testCreateThenGet(t *testing.T, repo meals.Repository) {
	m := newMeal("owner-1", base.Add(123456*time.Microsecond), true)
	m.Description = ""
	mustCreate(t, repo, m)

	got, err := repo.GetByID(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	assertSameMeal(t, m, got)

	// fechas fuera del rango de unix nanos (1678..2262)
	for _, at := range []time.Time{farPast, farFuture} {
		m := newMeal("owner-1", at, false)
		m.CreatedAt, m.UpdatedAt = at, at
		mustCreate(t, repo, m)

		got, err := repo.GetByID(context.Background(), m.ID)
		if err != nil {
			t.Fatalf("GetByID(%s) error: %v", at, err)
		}
		assertSameMeal(t, m, got)
	}
}

func testNotFound(t *testing.T, repo meals.Repository) {
	ctx := context.Background()
	missing := uuid.NewString()

	if _, err := repo.GetByID(ctx, missing); !errors.Is(err, meals.ErrNotFound) {
		t.Fatalf("GetByID: expected ErrNotFound, got %v", err)
	}
	if err := repo.Update(ctx, newMeal("owner-1", base, true)); !errors.Is(err, meals.ErrNotFound) {
		t.Fatalf("Update: expected ErrNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, missing); !errors.Is(err, meals.ErrNotFound) {
		t.Fatalf("Delete: expected ErrNotFound, got %v", err)
	}

	items, err := repo.ListByOwner(ctx, "owner-1")
	if err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty store, got %d meals", len(items))
	}
}

func testListOrderAndScope(t *testing.T, repo meals.Repository) {
	older := mustCreate(t, repo, newMeal("owner-1", base.Add(-time.Hour), true))
	tieFirst := mustCreate(t, repo, newMeal("owner-1", base, false))
	_ = mustCreate(t, repo, newMeal("owner-2", base, true))
	tieSecond := mustCreate(t, repo, newMeal("owner-1", base, true))
	newest := mustCreate(t, repo, newMeal("owner-1", base.Add(time.Hour), true))
	future := mustCreate(t, repo, newMeal("owner-1", farFuture, true))
	past := mustCreate(t, repo, newMeal("owner-1", farPast, false))

	got, err := repo.ListByOwner(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}

	want := []meals.Meal{future, newest, tieFirst, tieSecond, older, past}
	if len(got) != len(want) {
		t.Fatalf("expected %d meals, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].OwnerUserID != "owner-1" {
			t.Fatalf("leaked meal of %s", got[i].OwnerUserID)
		}
		if got[i].ID != want[i].ID {
			t.Fatalf("position %d: expected %s, got %s", i, want[i].ID, got[i].ID)
		}
	}

	tl, err := meals.NewTimeline(got)
	if err != nil {
		t.Fatalf("list is not a valid timeline: %v", err)
	}
	wantMetrics := meals.Metrics{Total: 6, OnDiet: 4, OffDiet: 2, BestOnDietStreak: 2}
	if m := meals.ComputeMetrics(tl); m != wantMetrics {
		t.Fatalf("expected %+v, got %+v", wantMetrics, m)
	}
}

func testUpdate(t *testing.T, repo meals.Repository) {
	m := mustCreate(t, repo, newMeal("owner-1", base, true))

	m.Name = "edited"
	m.Description = "new desc"
	m.OccurredAt = base.Add(-48 * time.Hour)
	m.IsOnDiet = false
	m.UpdatedAt = base.Add(time.Minute)
	if err := repo.Update(context.Background(), m); err != nil {
		t.Fatalf("Update error: %v", err)
	}

	got, err := repo.GetByID(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	assertSameMeal(t, m, got)
}

func testDelete(t *testing.T, repo meals.Repository) {
	ctx := context.Background()
	keep := mustCreate(t, repo, newMeal("owner-1", base, true))
	gone := mustCreate(t, repo, newMeal("owner-1", base, false))

	if err := repo.Delete(ctx, gone.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := repo.GetByID(ctx, gone.ID); !errors.Is(err, meals.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, gone.ID); !errors.Is(err, meals.ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}

	items, _ := repo.ListByOwner(ctx, "owner-1")
	if len(items) != 1 || items[0].ID != keep.ID {
		t.Fatalf("expected only %s left, got %+v", keep.ID, items)
	}
}
