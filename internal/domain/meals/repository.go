package meals

import "context"

// Repository es el contrato de persistencia.
// GetByID/Update/Delete devuelven ErrNotFound si el id no existe; cualquier otro
// error es del backend y se propaga tal cual.
type Repository interface {
	Create(ctx context.Context, m Meal) error
	GetByID(ctx context.Context, id string) (Meal, error)
	// ListByOwner devuelve las comidas del owner por occurred_at desc;
	// empates por orden de inserción (la más antigua primero).
	ListByOwner(ctx context.Context, ownerUserID string) ([]Meal, error)
	Update(ctx context.Context, m Meal) error
	Delete(ctx context.Context, id string) error
}
