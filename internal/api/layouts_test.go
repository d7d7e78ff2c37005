package api

import (
	"net/http"
	"testing"
)

func TestCreateAndGetLayout(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	body := `{
		"name": "Lounge Panel",
		"device_id": "plate01",
		"pages": [{"page_id": 1, "objects": [{"page": 1, "id": 1, "obj": "btn", "x": 10, "y": 10, "w": 100, "h": 50}]}]
	}`

	code, created := doJSON(t, router, http.MethodPost, "/api/v1/layouts", body)
	if code != http.StatusCreated {
		t.Fatalf("create status = %d, want %d", code, http.StatusCreated)
	}
	id, _ := created["id"].(string)
	if id == "" {
		t.Fatal("expected created layout to have an ID")
	}

	code, got := doJSON(t, router, http.MethodGet, "/api/v1/layouts/"+id, "")
	if code != http.StatusOK {
		t.Fatalf("get status = %d, want %d", code, http.StatusOK)
	}
	if got["name"] != "Lounge Panel" {
		t.Errorf("name = %v, want Lounge Panel", got["name"])
	}
	if got["device_id"] != "plate01" {
		t.Errorf("device_id = %v, want plate01", got["device_id"])
	}
}

func TestCreateLayout_RequiresName(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	code, resp := doJSON(t, router, http.MethodPost, "/api/v1/layouts", `{"device_id": "plate01"}`)
	if code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", code, http.StatusBadRequest)
	}
	if resp["code"] != ErrCodeBadRequest {
		t.Errorf("error code = %v, want %s", resp["code"], ErrCodeBadRequest)
	}
}

func TestGetLayout_NotFound(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	code, _ := doJSON(t, router, http.MethodGet, "/api/v1/layouts/missing", "")
	if code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", code, http.StatusNotFound)
	}
}

func TestUpdateLayout(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	_, created := doJSON(t, router, http.MethodPost, "/api/v1/layouts", `{"name": "Before"}`)
	id := created["id"].(string)

	code, updated := doJSON(t, router, http.MethodPut, "/api/v1/layouts/"+id, `{"name": "After", "description": "renamed"}`)
	if code != http.StatusOK {
		t.Fatalf("update status = %d, want %d", code, http.StatusOK)
	}
	if updated["name"] != "After" {
		t.Errorf("name = %v, want After", updated["name"])
	}
	if updated["id"] != id {
		t.Errorf("id = %v, want %s", updated["id"], id)
	}
}

func TestUpdateLayout_NotFound(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	code, _ := doJSON(t, router, http.MethodPut, "/api/v1/layouts/missing", `{"name": "X"}`)
	if code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", code, http.StatusNotFound)
	}
}

func TestDeleteLayout(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	_, created := doJSON(t, router, http.MethodPost, "/api/v1/layouts", `{"name": "Doomed"}`)
	id := created["id"].(string)

	code, _ := doJSON(t, router, http.MethodDelete, "/api/v1/layouts/"+id, "")
	if code != http.StatusOK {
		t.Fatalf("delete status = %d, want %d", code, http.StatusOK)
	}

	code, _ = doJSON(t, router, http.MethodGet, "/api/v1/layouts/"+id, "")
	if code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want %d", code, http.StatusNotFound)
	}
}

func TestListLayouts(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	doJSON(t, router, http.MethodPost, "/api/v1/layouts", `{"name": "One"}`)
	doJSON(t, router, http.MethodPost, "/api/v1/layouts", `{"name": "Two"}`)

	code, resp := doJSON(t, router, http.MethodGet, "/api/v1/layouts", "")
	if code != http.StatusOK {
		t.Fatalf("status = %d, want %d", code, http.StatusOK)
	}
	if int(resp["count"].(float64)) != 2 {
		t.Errorf("count = %v, want 2", resp["count"])
	}
}

func TestQuickLayout_RoundTrip(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	// Empty before any save.
	code, resp := doJSON(t, router, http.MethodGet, "/api/v1/layouts/quick", "")
	if code != http.StatusOK {
		t.Fatalf("load status = %d, want %d", code, http.StatusOK)
	}
	if int(resp["count"].(float64)) != 0 {
		t.Errorf("initial count = %v, want 0", resp["count"])
	}

	body := `{"objects": [{"page": 1, "id": 1, "obj": "btn", "x": 0, "y": 0, "w": 100, "h": 50}]}`
	code, resp = doJSON(t, router, http.MethodPost, "/api/v1/layouts/quick", body)
	if code != http.StatusOK {
		t.Fatalf("save status = %d, want %d", code, http.StatusOK)
	}
	if resp["saved"] != true {
		t.Errorf("saved = %v, want true", resp["saved"])
	}

	code, resp = doJSON(t, router, http.MethodGet, "/api/v1/layouts/quick", "")
	if code != http.StatusOK {
		t.Fatalf("reload status = %d, want %d", code, http.StatusOK)
	}
	if int(resp["count"].(float64)) != 1 {
		t.Errorf("count after save = %v, want 1", resp["count"])
	}
}
