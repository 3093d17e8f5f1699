package meals

import "errors"

var ErrUnordered = errors.New("meals are not ordered by occurred_at desc")

// Timeline es una secuencia de comidas de un owner, de la más reciente a la
// más antigua. Solo se construye con NewTimeline, que verifica el orden.
type Timeline struct {
	items []Meal
}

// NewTimeline valida que ms venga ordenado por OccurredAt desc. No ordena.
func NewTimeline(ms []Meal) (Timeline, error) {
	for i := 1; i < len(ms); i++ {
		if ms[i].OccurredAt.After(ms[i-1].OccurredAt) {
			return Timeline{}, ErrUnordered
		}
	}
	return Timeline{items: ms}, nil
}

func (t Timeline) Len() int { return len(t.items) }

// Meals devuelve una copia.
func (t Timeline) Meals() []Meal {
	out := make([]Meal, len(t.items))
	copy(out, t.items)
	return out
}

// ComputeMetrics recorre el timeline una vez en el orden dado.
// La racha se corta con cada comida fuera de la dieta.
func ComputeMetrics(t Timeline) Metrics {
	var m Metrics
	current := 0

	for _, meal := range t.items {
		m.Total++
		if meal.IsOnDiet {
			m.OnDiet++
			current++
			if current > m.BestOnDietStreak {
				m.BestOnDietStreak = current
			}
			continue
		}
		m.OffDiet++
		current = 0
	}

	return m
}
