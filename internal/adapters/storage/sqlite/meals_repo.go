package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"daily-diet/internal/domain/meals"
)

// MealsRepo guarda los timestamps como unix micros (INTEGER) y desempata por
// rowid, que sqlite asigna creciente en cada insert.
type MealsRepo struct {
	db *sql.DB
}

func NewMealsRepo(db *sql.DB) *MealsRepo {
	return &MealsRepo{db: db}
}

const (
	insertMealStatement = `
	INSERT INTO meals (id, owner_user_id, name, description, occurred_at, is_on_diet, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	getMealStatement = `
	SELECT id, owner_user_id, name, description, occurred_at, is_on_diet, created_at, updated_at
	FROM meals
	WHERE id = ?
	`

	listMealsByOwnerStatement = `
	SELECT id, owner_user_id, name, description, occurred_at, is_on_diet, created_at, updated_at
	FROM meals
	WHERE owner_user_id = ?
	ORDER BY occurred_at DESC, rowid ASC
	`

	updateMealStatement = `
	UPDATE meals
	SET name = ?, description = ?, occurred_at = ?, is_on_diet = ?, updated_at = ?
	WHERE id = ?
	`

	deleteMealStatement = `DELETE FROM meals WHERE id = ?`
)

func (r *MealsRepo) Create(ctx context.Context, m meals.Meal) error {
	_, err := r.db.ExecContext(ctx, insertMealStatement,
		m.ID,
		m.OwnerUserID,
		m.Name,
		m.Description,
		toUnix(m.OccurredAt),
		m.IsOnDiet,
		toUnix(m.CreatedAt),
		toUnix(m.UpdatedAt),
	)
	return err
}

func (r *MealsRepo) GetByID(ctx context.Context, id string) (meals.Meal, error) {
	m, err := scanMeal(r.db.QueryRowContext(ctx, getMealStatement, strings.TrimSpace(id)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return meals.Meal{}, meals.ErrNotFound
		}
		return meals.Meal{}, err
	}
	return m, nil
}

func (r *MealsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]meals.Meal, error) {
	rows, err := r.db.QueryContext(ctx, listMealsByOwnerStatement, ownerUserID)
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
	res, err := r.db.ExecContext(ctx, updateMealStatement,
		m.Name,
		m.Description,
		toUnix(m.OccurredAt),
		m.IsOnDiet,
		toUnix(m.UpdatedAt),
		m.ID,
	)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func (r *MealsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteMealStatement, id)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMeal(s rowScanner) (meals.Meal, error) {
	var m meals.Meal
	var occurred, created, updated int64
	if err := s.Scan(
		&m.ID,
		&m.OwnerUserID,
		&m.Name,
		&m.Description,
		&occurred,
		&m.IsOnDiet,
		&created,
		&updated,
	); err != nil {
		return meals.Meal{}, err
	}

	m.OccurredAt = fromUnix(occurred)
	m.CreatedAt = fromUnix(created)
	m.UpdatedAt = fromUnix(updated)
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

func toUnix(t time.Time) int64 { return t.UnixMicro() }

func fromUnix(n int64) time.Time { return time.UnixMicro(n).UTC() }

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
