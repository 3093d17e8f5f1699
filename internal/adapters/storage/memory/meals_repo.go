package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"daily-diet/internal/domain/meals"
)

type storedMeal struct {
	meal meals.Meal
	seq  uint64 // orden de inserción, desempata occurred_at
}

type mealRepo struct {
	mu      sync.RWMutex
	byID    map[string]storedMeal
	nextSeq uint64
}

func NewMealRepo() meals.Repository {
	return &mealRepo{
		byID: make(map[string]storedMeal),
	}
}

func (r *mealRepo) Create(ctx context.Context, m meals.Meal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(m.ID) == "" {
		return errors.New("meal id required")
	}
	if _, exists := r.byID[m.ID]; exists {
		return errors.New("meal already exists")
	}

	r.nextSeq++
	r.byID[m.ID] = storedMeal{meal: m, seq: r.nextSeq}
	return nil
}

func (r *mealRepo) GetByID(ctx context.Context, id string) (meals.Meal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return meals.Meal{}, meals.ErrNotFound
	}
	return s.meal, nil
}

func (r *mealRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]meals.Meal, error) {
	r.mu.RLock()
	stored := make([]storedMeal, 0)
	for _, s := range r.byID {
		if s.meal.OwnerUserID == ownerUserID {
			stored = append(stored, s)
		}
	}
	r.mu.RUnlock()

	// occurred_at desc, empates por inserción asc
	sort.Slice(stored, func(i, j int) bool {
		a, b := stored[i], stored[j]
		if !a.meal.OccurredAt.Equal(b.meal.OccurredAt) {
			return a.meal.OccurredAt.After(b.meal.OccurredAt)
		}
		return a.seq < b.seq
	})

	out := make([]meals.Meal, 0, len(stored))
	for _, s := range stored {
		out = append(out, s.meal)
	}
	return out, nil
}

// Update mantiene el seq original: editar no cambia el orden de inserción.
func (r *mealRepo) Update(ctx context.Context, m meals.Meal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byID[m.ID]
	if !ok {
		return meals.ErrNotFound
	}
	s.meal = m
	r.byID[m.ID] = s
	return nil
}

func (r *mealRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return meals.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
