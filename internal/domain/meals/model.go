package meals

import "time"

// Meal es una comida registrada por un usuario.
type Meal struct {
	ID          string
	OwnerUserID string

	Name        string
	Description string

	OccurredAt time.Time
	IsOnDiet   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Metrics resume el historial de comidas de un usuario.
type Metrics struct {
	Total            int
	OnDiet           int
	OffDiet          int
	BestOnDietStreak int
}
