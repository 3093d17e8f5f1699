package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"daily-diet/internal/domain/meals"
	"daily-diet/internal/platform/logger"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type tools struct {
	svc   *meals.Service
	owner string
	log   logger.Logger
}

// mealJSON es la forma en que las tools devuelven una comida.
type mealJSON struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsOnDiet    bool      `json:"is_on_diet"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type metricsJSON struct {
	TotalMeals         int `json:"total_meals"`
	TotalMealsOnDiet   int `json:"total_meals_on_diet"`
	TotalMealsOffDiet  int `json:"total_meals_off_diet"`
	BestOnDietSequence int `json:"best_on_diet_sequence"`
}

func (t *tools) register(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("create_meal",
		mcp.WithDescription("Records a meal for the current user."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Short name of the meal.")),
		mcp.WithString("description", mcp.Description("Optional free text description.")),
		mcp.WithString("date", mcp.Required(), mcp.Description("When the meal happened, RFC3339 or YYYY-MM-DD.")),
		mcp.WithBoolean("is_on_diet", mcp.Required(), mcp.Description("Whether the meal was within the diet.")),
	), t.createMeal)

	s.AddTool(mcp.NewTool("list_meals",
		mcp.WithDescription("Lists the current user's meals, most recent first."),
	), t.listMeals)

	s.AddTool(mcp.NewTool("get_meal",
		mcp.WithDescription("Retrieves one meal by id."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Meal id (UUID).")),
	), t.getMeal)

	s.AddTool(mcp.NewTool("update_meal",
		mcp.WithDescription("Replaces every field of an existing meal. Omitted optional fields keep their current value."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Meal id (UUID).")),
		mcp.WithString("name", mcp.Description("New name.")),
		mcp.WithString("description", mcp.Description("New description.")),
		mcp.WithString("date", mcp.Description("New date, RFC3339 or YYYY-MM-DD.")),
		mcp.WithBoolean("is_on_diet", mcp.Description("New on-diet flag.")),
	), t.updateMeal)

	s.AddTool(mcp.NewTool("delete_meal",
		mcp.WithDescription("Deletes one meal by id."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Meal id (UUID).")),
	), t.deleteMeal)

	s.AddTool(mcp.NewTool("meal_metrics",
		mcp.WithDescription("Returns total meals, on/off diet counts and the best on-diet streak."),
	), t.mealMetrics)
}

func (t *tools) createMeal(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments

	name, _ := args["name"].(string)
	if strings.TrimSpace(name) == "" {
		return mcp.NewToolResultError("'name' parameter is required and must be a non-empty string."), nil
	}
	description, _ := args["description"].(string)

	dateStr, _ := args["date"].(string)
	at, err := meals.ParseDate(dateStr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid 'date': %v", err)), nil
	}

	onDiet, ok := args["is_on_diet"].(bool)
	if !ok {
		return mcp.NewToolResultError("'is_on_diet' parameter is required and must be a boolean."), nil
	}

	m, err := t.svc.Create(ctx, t.owner, meals.Input{
		Name:        strings.TrimSpace(name),
		Description: description,
		OccurredAt:  at,
		IsOnDiet:    onDiet,
	})
	if err != nil {
		return t.failure("create meal", err), nil
	}
	return jsonResult(toMealJSON(m))
}

func (t *tools) listMeals(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tl, err := t.svc.ListByOwner(ctx, t.owner)
	if err != nil {
		return t.failure("list meals", err), nil
	}

	items := tl.Meals()
	out := make([]mealJSON, 0, len(items))
	for _, m := range items {
		out = append(out, toMealJSON(m))
	}
	return jsonResult(out)
}

func (t *tools) getMeal(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errRes := mealIDArg(request)
	if errRes != nil {
		return errRes, nil
	}

	m, errRes := t.ownedMeal(ctx, id)
	if errRes != nil {
		return errRes, nil
	}
	return jsonResult(toMealJSON(m))
}

func (t *tools) updateMeal(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errRes := mealIDArg(request)
	if errRes != nil {
		return errRes, nil
	}

	current, errRes := t.ownedMeal(ctx, id)
	if errRes != nil {
		return errRes, nil
	}

	args := request.Params.Arguments
	in := meals.Input{
		Name:        current.Name,
		Description: current.Description,
		OccurredAt:  current.OccurredAt,
		IsOnDiet:    current.IsOnDiet,
	}
	if v, ok := args["name"].(string); ok {
		if strings.TrimSpace(v) == "" {
			return mcp.NewToolResultError("'name' must be a non-empty string."), nil
		}
		in.Name = strings.TrimSpace(v)
	}
	if v, ok := args["description"].(string); ok {
		in.Description = v
	}
	if v, ok := args["date"].(string); ok {
		at, err := meals.ParseDate(v)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid 'date': %v", err)), nil
		}
		in.OccurredAt = at
	}
	if v, ok := args["is_on_diet"].(bool); ok {
		in.IsOnDiet = v
	}

	m, err := t.svc.Update(ctx, id, in)
	if err != nil {
		if errors.Is(err, meals.ErrNotFound) {
			return notFound(id), nil
		}
		return t.failure("update meal", err), nil
	}
	return jsonResult(toMealJSON(m))
}

func (t *tools) deleteMeal(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errRes := mealIDArg(request)
	if errRes != nil {
		return errRes, nil
	}

	if _, errRes := t.ownedMeal(ctx, id); errRes != nil {
		return errRes, nil
	}

	if err := t.svc.Delete(ctx, id); err != nil {
		if errors.Is(err, meals.ErrNotFound) {
			return notFound(id), nil
		}
		return t.failure("delete meal", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Meal '%s' deleted.", id)), nil
}

func (t *tools) mealMetrics(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	m, err := t.svc.Metrics(ctx, t.owner)
	if err != nil {
		return t.failure("compute metrics", err), nil
	}
	return jsonResult(metricsJSON{
		TotalMeals:         m.Total,
		TotalMealsOnDiet:   m.OnDiet,
		TotalMealsOffDiet:  m.OffDiet,
		BestOnDietSequence: m.BestOnDietStreak,
	})
}

// ownedMeal trata igual "no existe" y "es de otro usuario".
func (t *tools) ownedMeal(ctx context.Context, id string) (meals.Meal, *mcp.CallToolResult) {
	m, err := t.svc.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, meals.ErrNotFound) {
			return meals.Meal{}, notFound(id)
		}
		return meals.Meal{}, t.failure("get meal", err)
	}
	if m.OwnerUserID != t.owner {
		return meals.Meal{}, notFound(id)
	}
	return m, nil
}

func (t *tools) failure(op string, err error) *mcp.CallToolResult {
	t.log.Error("mcp: "+op+" failed", map[string]any{"error": err.Error()})
	return mcp.NewToolResultError(fmt.Sprintf("Failed to %s: %v", op, err))
}

func mealIDArg(request mcp.CallToolRequest) (string, *mcp.CallToolResult) {
	raw, _ := request.Params.Arguments["id"].(string)
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", mcp.NewToolResultError("'id' parameter is required and must be a UUID.")
	}
	return id.String(), nil
}

func notFound(id string) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("Meal '%s' not found.", id))
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize result to JSON: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

func toMealJSON(m meals.Meal) mealJSON {
	return mealJSON{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		IsOnDiet:    m.IsOnDiet,
		Date:        m.OccurredAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
