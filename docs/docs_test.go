package docs

import (
	"encoding/json"
	"testing"

	"github.com/swaggo/swag"
)

func TestSwaggerDoc_RegisteredAndValid(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	if err != nil {
		t.Fatalf("ReadDoc error: %v", err)
	}

	var doc struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		Paths map[string]map[string]any `json:"paths"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("swagger doc is not valid json: %v", err)
	}
	if doc.Info.Title != "Daily Diet API" {
		t.Fatalf("unexpected title %q", doc.Info.Title)
	}

	want := map[string][]string{
		"/meals":          {"get", "post"},
		"/meals/metrics":  {"get"},
		"/meals/{mealID}": {"get", "put", "delete"},
	}
	for path, methods := range want {
		for _, m := range methods {
			if _, ok := doc.Paths[path][m]; !ok {
				t.Fatalf("missing %s %s in swagger doc", m, path)
			}
		}
	}
}
