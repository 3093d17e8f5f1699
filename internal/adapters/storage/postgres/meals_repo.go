package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"daily-diet/internal/domain/meals"

	"github.com/google/uuid"
)

type MealsRepo struct {
	db *sql.DB
}

func NewMealsRepo(db *sql.DB) *MealsRepo {
	return &MealsRepo{db: db}
}

const mealColumns = `
	id, owner_user_id,
	name, description,
	occurred_at, is_on_diet,
	created_at, updated_at
`

func (r *MealsRepo) Create(ctx context.Context, m meals.Meal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO meals (`+mealColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		m.ID,
		m.OwnerUserID,
		m.Name,
		m.Description,
		m.OccurredAt,
		m.IsOnDiet,
		m.CreatedAt,
		m.UpdatedAt,
	)
	return err
}

func (r *MealsRepo) GetByID(ctx context.Context, id string) (meals.Meal, error) {
	if !validID(id) {
		return meals.Meal{}, meals.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+mealColumns+` FROM meals WHERE id = $1`, id)

	m, err := scanMeal(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return meals.Meal{}, meals.ErrNotFound
		}
		return meals.Meal{}, err
	}
	return m, nil
}

func (r *MealsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]meals.Meal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+mealColumns+`
		FROM meals
		WHERE owner_user_id = $1
		ORDER BY occurred_at DESC, seq ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]meals.Meal, 0)
	for rows.Next() {
		m, err := scanMeal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}

	return out, rows.Err()
}

func (r *MealsRepo) Update(ctx context.Context, m meals.Meal) error {
	if !validID(m.ID) {
		return meals.ErrNotFound
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE meals
		SET
			name = $2,
			description = $3,
			occurred_at = $4,
			is_on_diet = $5,
			updated_at = $6
		WHERE id = $1
	`,
		m.ID,
		m.Name,
		m.Description,
		m.OccurredAt,
		m.IsOnDiet,
		m.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func (r *MealsRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return meals.ErrNotFound
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM meals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

// id es UUID en la tabla; un id mal formado no puede existir y Postgres
// respondería con error de sintaxis en vez de "no rows".
func validID(id string) bool {
	_, err := uuid.Parse(strings.TrimSpace(id))
	return err == nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMeal(s rowScanner) (meals.Meal, error) {
	var m meals.Meal
	if err := s.Scan(
		&m.ID,
		&m.OwnerUserID,
		&m.Name,
		&m.Description,
		&m.OccurredAt,
		&m.IsOnDiet,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return meals.Meal{}, err
	}

	// pgx devuelve timestamptz en hora local
	m.OccurredAt = m.OccurredAt.UTC()
	m.CreatedAt = m.CreatedAt.UTC()
	m.UpdatedAt = m.UpdatedAt.UTC()
	return m, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return meals.ErrNotFound
	}
	return nil
}
