package meals

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"daily-diet/internal/middleware"
	"daily-diet/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/meals", func(mr chi.Router) {
		mr.Post("/", createMealHandler(svc))
		mr.Get("/", listMealsHandler(svc))
		mr.Get("/metrics", metricsHandler(svc))

		mr.Get("/{mealID}", getMealHandler(svc))
		mr.Put("/{mealID}", updateMealHandler(svc))
		mr.Delete("/{mealID}", deleteMealHandler(svc))
	})
}

// mealRequest es el cuerpo para crear o reemplazar una comida.
type mealRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsOnDiet    *bool   `json:"is_on_diet"`
	Date        string  `json:"date"` // RFC3339 o YYYY-MM-DD
}

// mealResponse representa una comida devuelta por la API.
type mealResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsOnDiet    bool      `json:"is_on_diet"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type mealEnvelope struct {
	Meal mealResponse `json:"meal"`
}

type mealListEnvelope struct {
	Meals []mealResponse `json:"meals"`
}

// metricsResponse resume el historial del usuario autenticado.
type metricsResponse struct {
	TotalMeals         int `json:"total_meals"`
	TotalMealsOnDiet   int `json:"total_meals_on_diet"`
	TotalMealsOffDiet  int `json:"total_meals_off_diet"`
	BestOnDietSequence int `json:"best_on_diet_sequence"`
}

// createMealHandler godoc
// @Summary Registrar comida
// @Description Registra una comida del usuario autenticado. Autenticación: header X-Debug-User-ID (dev) o Authorization Bearer (prod).
// @Tags meals
// @Accept json
// @Produce json
// @Param payload body mealRequest true "Datos de la comida; date en RFC3339 o YYYY-MM-DD"
// @Success 201 {object} mealResponse
// @Failure 400 {string} string "invalid json / validación"
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /meals [post]
func createMealHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		in, err := decodeMealRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		m, err := svc.Create(r.Context(), userID, in)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			internalError(w, r, "create meal", err)
			return
		}

		writeJSON(w, http.StatusCreated, toMealResponse(m))
	}
}

// listMealsHandler godoc
// @Summary Listar comidas
// @Description Lista las comidas del usuario autenticado, de la más reciente a la más antigua.
// @Tags meals
// @Produce json
// @Success 200 {object} mealListEnvelope
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /meals [get]
func listMealsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		t, err := svc.ListByOwner(r.Context(), userID)
		if err != nil {
			internalError(w, r, "list meals", err)
			return
		}

		items := t.Meals()
		out := make([]mealResponse, 0, len(items))
		for _, m := range items {
			out = append(out, toMealResponse(m))
		}

		writeJSON(w, http.StatusOK, mealListEnvelope{Meals: out})
	}
}

// getMealHandler godoc
// @Summary Ver comida
// @Tags meals
// @Produce json
// @Param mealID path string true "ID de la comida (UUID)"
// @Success 200 {object} mealEnvelope
// @Failure 400 {string} string "invalid meal id"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "meal not found"
// @Router /meals/{mealID} [get]
func getMealHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		mealID, ok := mealIDParam(w, r)
		if !ok {
			return
		}

		m, ok := loadOwnedMeal(w, r, svc, mealID, userID)
		if !ok {
			return
		}

		writeJSON(w, http.StatusOK, mealEnvelope{Meal: toMealResponse(m)})
	}
}

// updateMealHandler godoc
// @Summary Reemplazar comida
// @Description Reemplaza nombre, descripción, fecha y flag de dieta. id y dueño no cambian.
// @Tags meals
// @Accept json
// @Param mealID path string true "ID de la comida (UUID)"
// @Param payload body mealRequest true "Datos completos de la comida"
// @Success 204
// @Failure 400 {string} string "invalid json / validación"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "meal not found"
// @Failure 500 {string} string "internal error"
// @Router /meals/{mealID} [put]
func updateMealHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		mealID, ok := mealIDParam(w, r)
		if !ok {
			return
		}

		in, err := decodeMealRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if _, ok := loadOwnedMeal(w, r, svc, mealID, userID); !ok {
			return
		}

		if _, err := svc.Update(r.Context(), mealID, in); err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				http.Error(w, "meal not found", http.StatusNotFound)
				return
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			internalError(w, r, "update meal", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// deleteMealHandler godoc
// @Summary Borrar comida
// @Tags meals
// @Param mealID path string true "ID de la comida (UUID)"
// @Success 204
// @Failure 400 {string} string "invalid meal id"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "meal not found"
// @Failure 500 {string} string "internal error"
// @Router /meals/{mealID} [delete]
func deleteMealHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		mealID, ok := mealIDParam(w, r)
		if !ok {
			return
		}

		if _, ok := loadOwnedMeal(w, r, svc, mealID, userID); !ok {
			return
		}

		if err := svc.Delete(r.Context(), mealID); err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "meal not found", http.StatusNotFound)
				return
			}
			internalError(w, r, "delete meal", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// metricsHandler godoc
// @Summary Métricas de dieta
// @Description Totales de comidas dentro/fuera de la dieta y la mejor racha dentro de la dieta (de la más reciente a la más antigua).
// @Tags meals
// @Produce json
// @Success 200 {object} metricsResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /meals/metrics [get]
func metricsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		m, err := svc.Metrics(r.Context(), userID)
		if err != nil {
			internalError(w, r, "compute metrics", err)
			return
		}

		writeJSON(w, http.StatusOK, metricsResponse{
			TotalMeals:         m.Total,
			TotalMealsOnDiet:   m.OnDiet,
			TotalMealsOffDiet:  m.OffDiet,
			BestOnDietSequence: m.BestOnDietStreak,
		})
	}
}

func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return "", false
	}
	return claims.UserID, true
}

func mealIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "mealID"))
	if err != nil {
		http.Error(w, "invalid meal id", http.StatusBadRequest)
		return "", false
	}
	return id.String(), true
}

// loadOwnedMeal responde 404 también cuando la comida es de otro usuario,
// para no revelar que el id existe.
func loadOwnedMeal(w http.ResponseWriter, r *http.Request, svc *Service, mealID, userID string) (Meal, bool) {
	m, err := svc.GetByID(r.Context(), mealID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "meal not found", http.StatusNotFound)
			return Meal{}, false
		}
		internalError(w, r, "get meal", err)
		return Meal{}, false
	}
	if m.OwnerUserID != userID {
		http.Error(w, "meal not found", http.StatusNotFound)
		return Meal{}, false
	}
	return m, true
}

func decodeMealRequest(r *http.Request) (Input, error) {
	var req mealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return Input{}, errors.New("invalid json")
	}
	return req.toInput()
}

func (req mealRequest) toInput() (Input, error) {
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		return Input{}, errors.New("name is required")
	}
	if req.Description == nil {
		return Input{}, errors.New("description is required")
	}
	if req.IsOnDiet == nil {
		return Input{}, errors.New("is_on_diet is required")
	}

	at, err := ParseDate(req.Date)
	if err != nil {
		return Input{}, err
	}

	return Input{
		Name:        strings.TrimSpace(*req.Name),
		Description: *req.Description,
		OccurredAt:  at,
		IsOnDiet:    *req.IsOnDiet,
	}, nil
}

// ParseDate acepta RFC3339 o solo fecha (YYYY-MM-DD, medianoche UTC).
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("date is required")
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, errors.New("date must be RFC3339 or YYYY-MM-DD")
}

func internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	logger.FromContext(r.Context()).Error("meals: "+op+" failed", map[string]any{
		"error": err.Error(),
	})
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func toMealResponse(m Meal) mealResponse {
	return mealResponse{
		ID:          m.ID,
		UserID:      m.OwnerUserID,
		Name:        m.Name,
		Description: m.Description,
		IsOnDiet:    m.IsOnDiet,
		Date:        m.OccurredAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
