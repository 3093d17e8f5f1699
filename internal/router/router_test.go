package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"daily-diet/internal/adapters/auth/jwtauth"
	"daily-diet/internal/router"
)

func TestHTTP_EndToEnd_MealsAndMetrics(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	userID := "user-1"
	base := time.Date(2025, 12, 22, 20, 0, 0, 0, time.UTC)

	// 1) Cuatro comidas con fechas decrecientes: on, on, off, on
	var ids []string
	for i, onDiet := range []bool{true, true, false, true} {
		ids = append(ids, createMeal(t, ts.URL, userID, map[string]any{
			"name":        "meal",
			"description": "",
			"is_on_diet":  onDiet,
			"date":        base.Add(-time.Duration(i) * time.Hour).Format(time.RFC3339),
		}))
	}

	// 2) Listado en orden desc
	{
		st, body := doReq(t, ts.URL, "GET", "/meals", userID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list meals, got %d body=%s", st, string(body))
		}
		var resp struct {
			Meals []struct {
				ID string `json:"id"`
			} `json:"meals"`
		}
		_ = json.Unmarshal(body, &resp)
		if len(resp.Meals) != 4 {
			t.Fatalf("expected 4 meals, got %d", len(resp.Meals))
		}
		for i := range ids {
			if resp.Meals[i].ID != ids[i] {
				t.Fatalf("position %d: expected %s, got %s", i, ids[i], resp.Meals[i].ID)
			}
		}
	}

	// 3) Métricas
	{
		st, body := doReq(t, ts.URL, "GET", "/meals/metrics", userID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 metrics, got %d body=%s", st, string(body))
		}
		var m map[string]int
		_ = json.Unmarshal(body, &m)
		want := map[string]int{
			"total_meals":           4,
			"total_meals_on_diet":   3,
			"total_meals_off_diet":  1,
			"best_on_diet_sequence": 2,
		}
		for k, v := range want {
			if m[k] != v {
				t.Fatalf("metrics %s: expected %d, got %d (body=%s)", k, v, m[k], string(body))
			}
		}
	}

	// 4) Update de la comida off-diet => racha completa de 4
	{
		st, body := doReq(t, ts.URL, "PUT", "/meals/"+ids[2], userID, map[string]any{
			"name":        "salad",
			"description": "  green, no dressing ",
			"is_on_diet":  true,
			"date":        base.Add(-2 * time.Hour).Format(time.RFC3339),
		})
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 update, got %d body=%s", st, string(body))
		}

		st, body = doReq(t, ts.URL, "GET", "/meals/metrics", userID, nil)
		var m map[string]int
		_ = json.Unmarshal(body, &m)
		if st != http.StatusOK || m["best_on_diet_sequence"] != 4 {
			t.Fatalf("expected streak 4 after update, got %d body=%s", st, string(body))
		}
	}

	// 5) Get devuelve los campos actualizados
	{
		st, body := doReq(t, ts.URL, "GET", "/meals/"+ids[2], userID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get meal, got %d body=%s", st, string(body))
		}
		var resp struct {
			Meal struct {
				ID          string `json:"id"`
				UserID      string `json:"user_id"`
				Name        string `json:"name"`
				Description string `json:"description"`
				IsOnDiet    bool   `json:"is_on_diet"`
			} `json:"meal"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Meal.ID != ids[2] || resp.Meal.UserID != userID || resp.Meal.Name != "salad" ||
			resp.Meal.Description != "  green, no dressing " || !resp.Meal.IsOnDiet {
			t.Fatalf("unexpected meal: %s", string(body))
		}
	}

	// 6) Delete y después 404
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/meals/"+ids[0], userID, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 delete, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "GET", "/meals/"+ids[0], userID, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 after delete, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "DELETE", "/meals/"+ids[0], userID, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 on second delete, got %d", st)
		}
	}
}

func TestHTTP_OwnerScoping(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	mealID := createMeal(t, ts.URL, "owner-1", map[string]any{
		"name":        "Milo's lunch",
		"description": "pasta",
		"is_on_diet":  false,
		"date":        "2025-12-22",
	})

	// Otro usuario no la ve en el listado
	{
		st, body := doReq(t, ts.URL, "GET", "/meals", "intruder", nil)
		if st != http.StatusOK || strings.Contains(string(body), mealID) {
			t.Fatalf("expected empty list for intruder, got %d body=%s", st, string(body))
		}
	}

	// Ni puede leerla, editarla o borrarla
	for _, method := range []string{"GET", "PUT", "DELETE"} {
		var payload any
		if method == "PUT" {
			payload = map[string]any{"name": "x", "description": "", "is_on_diet": true, "date": "2025-12-22"}
		}
		st, _ := doReq(t, ts.URL, method, "/meals/"+mealID, "intruder", payload)
		if st != http.StatusNotFound {
			t.Fatalf("%s by intruder: expected 404, got %d", method, st)
		}
	}

	// Las métricas del intruso no incluyen la comida
	{
		_, body := doReq(t, ts.URL, "GET", "/meals/metrics", "intruder", nil)
		var m map[string]int
		_ = json.Unmarshal(body, &m)
		if m["total_meals"] != 0 {
			t.Fatalf("expected 0 meals for intruder, got %s", string(body))
		}
	}

	// El dueño sigue viéndola intacta
	{
		st, body := doReq(t, ts.URL, "GET", "/meals/"+mealID, "owner-1", nil)
		if st != http.StatusOK || !strings.Contains(string(body), "pasta") {
			t.Fatalf("expected owner to see meal, got %d body=%s", st, string(body))
		}
	}
}

func TestHTTP_Validation(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	cases := map[string]map[string]any{
		"blank name":      {"name": "  ", "description": "", "is_on_diet": true, "date": "2025-12-22"},
		"missing flag":    {"name": "a", "description": "", "date": "2025-12-22"},
		"missing desc":    {"name": "a", "is_on_diet": true, "date": "2025-12-22"},
		"bad date":        {"name": "a", "description": "", "is_on_diet": true, "date": "yesterday"},
		"missing date":    {"name": "a", "description": "", "is_on_diet": true},
		"wrong flag type": {"name": "a", "description": "", "is_on_diet": "yes", "date": "2025-12-22"},
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			st, body := doReq(t, ts.URL, "POST", "/meals", "user-1", payload)
			if st != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d body=%s", st, string(body))
			}
		})
	}

	st, _ := doReq(t, ts.URL, "GET", "/meals/not-a-uuid", "user-1", nil)
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid id, got %d", st)
	}
	st, _ = doReq(t, ts.URL, "PUT", "/meals/7b0d9a4c-8f7e-4a0e-9d1b-2f6c1f0e9a11", "user-1", map[string]any{
		"name": "a", "description": "", "is_on_diet": true, "date": "2025-12-22",
	})
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 updating missing meal, got %d", st)
	}
}

func TestHTTP_RequiresAuth(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	for _, path := range []string{"/meals", "/meals/metrics"} {
		st, _ := doReq(t, ts.URL, "GET", path, "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("GET %s without user: expected 401, got %d", path, st)
		}
	}
}

func TestHTTP_JWTVerifier(t *testing.T) {
	v := jwtauth.NewVerifier("s3cret")
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: v}))
	defer ts.Close()

	// con verifier, el header de debug no alcanza
	st, _ := doReq(t, ts.URL, "GET", "/meals", "user-1", nil)
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 with debug header in jwt mode, got %d", st)
	}

	tok, err := v.Issue("user-1", "", time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	req, _ := http.NewRequest("GET", ts.URL+"/meals", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 with valid token, got %d", res.StatusCode)
	}
}

func TestHTTP_HealthAndPrometheus(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	st, body := doReq(t, ts.URL, "GET", "/health", "", nil)
	if st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("expected 200 ok, got %d %s", st, string(body))
	}

	_, _ = doReq(t, ts.URL, "GET", "/meals/metrics", "user-1", nil)

	st, body = doReq(t, ts.URL, "GET", "/metrics", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 from /metrics, got %d", st)
	}
	if !strings.Contains(string(body), `daily_diet_http_requests_total{method="GET",route="/meals/metrics",status="200"} 1`) {
		t.Fatalf("expected request counter for /meals/metrics, got:\n%s", string(body))
	}
}

func createMeal(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/meals", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create meal, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create meal: missing id body=%s", string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
