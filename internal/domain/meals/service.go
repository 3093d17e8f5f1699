package meals

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("meal not found")
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Input agrupa los campos mutables de una comida.
type Input struct {
	Name        string
	Description string
	OccurredAt  time.Time
	IsOnDiet    bool
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in Input) (Meal, error) {
	if strings.TrimSpace(ownerUserID) == "" || !in.valid() {
		return Meal{}, ErrInvalidInput
	}

	now := normalizeTime(s.now())
	m := Meal{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Name:        in.Name,
		Description: in.Description,
		OccurredAt:  normalizeTime(in.OccurredAt),
		IsOnDiet:    in.IsOnDiet,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return Meal{}, err
	}
	return m, nil
}

// GetByID no filtra por owner; el handler decide si el caller puede verla.
func (s *Service) GetByID(ctx context.Context, id string) (Meal, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) (Timeline, error) {
	items, err := s.repo.ListByOwner(ctx, ownerUserID)
	if err != nil {
		return Timeline{}, err
	}
	return NewTimeline(items)
}

// Update reemplaza todos los campos mutables. id y owner no cambian.
func (s *Service) Update(ctx context.Context, id string, in Input) (Meal, error) {
	if !in.valid() {
		return Meal{}, ErrInvalidInput
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Meal{}, err
	}

	current.Name = in.Name
	current.Description = in.Description
	current.OccurredAt = normalizeTime(in.OccurredAt)
	current.IsOnDiet = in.IsOnDiet
	current.UpdatedAt = normalizeTime(s.now())

	if err := s.repo.Update(ctx, current); err != nil {
		return Meal{}, err
	}
	return current, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Metrics lee el historial actual del owner y lo reduce en una pasada.
// No hay snapshot: el resultado puede quedar viejo apenas se devuelve.
func (s *Service) Metrics(ctx context.Context, ownerUserID string) (Metrics, error) {
	t, err := s.ListByOwner(ctx, ownerUserID)
	if err != nil {
		return Metrics{}, err
	}
	return ComputeMetrics(t), nil
}

func (in Input) valid() bool {
	return strings.TrimSpace(in.Name) != "" && !in.OccurredAt.IsZero()
}

// Postgres y sqlite guardan microsegundos; normalizamos para que todos los
// backends devuelvan exactamente lo que se guardó.
func normalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
