package api

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/nerrad567/hasp-designer/internal/importer"
	"github.com/nerrad567/hasp-designer/internal/validation"
)

// ─── Validation Endpoint Tests ─────────────────────────────────────

func TestValidate_DefaultsOptions(t *testing.T) {
	srv, deps := testServer(t)
	router := srv.buildRouter()

	body := `{"objects": [{"page": 1, "id": 1, "obj": "btn", "x": 0, "y": 0, "w": 100, "h": 50}], "device_id": "plate01"}`
	code, resp := doJSON(t, router, http.MethodPost, "/api/v1/validate", body)
	if code != http.StatusOK {
		t.Fatalf("status = %d, want %d", code, http.StatusOK)
	}
	if resp["passed"] != true {
		t.Errorf("passed = %v, want true", resp["passed"])
	}
	if deps.validator.gotDeviceID != "plate01" {
		t.Errorf("device_id = %q, want plate01", deps.validator.gotDeviceID)
	}
	if deps.validator.gotOptions != validation.DefaultOptions() {
		t.Errorf("options = %+v, want defaults", deps.validator.gotOptions)
	}
}

func TestValidate_ExplicitOptions(t *testing.T) {
	srv, deps := testServer(t)
	router := srv.buildRouter()

	body := `{"objects": [], "device_id": "plate01", "options": {"validate_entities": false, "check_overlaps": true}}`
	code, _ := doJSON(t, router, http.MethodPost, "/api/v1/validate", body)
	if code != http.StatusOK {
		t.Fatalf("status = %d, want %d", code, http.StatusOK)
	}
	if deps.validator.gotOptions.CheckEntities {
		t.Error("expected entity checks disabled")
	}
	if !deps.validator.gotOptions.CheckOverlaps {
		t.Error("expected overlap checks enabled")
	}
}

func TestValidate_FailuresStillReturn200(t *testing.T) {
	srv, deps := testServer(t)
	deps.validator.result = validation.Result{
		Passed: false,
		Errors: []validation.Error{{Kind: validation.KindDevice, Message: "device offline"}},
	}
	router := srv.buildRouter()

	code, resp := doJSON(t, router, http.MethodPost, "/api/v1/validate", `{"objects": [], "device_id": "plate01"}`)
	if code != http.StatusOK {
		t.Fatalf("status = %d, want %d", code, http.StatusOK)
	}
	if resp["passed"] != false {
		t.Errorf("passed = %v, want false", resp["passed"])
	}
}

func TestValidateEntity(t *testing.T) {
	srv, deps := testServer(t)
	deps.entities.exists["light.lounge"] = true
	router := srv.buildRouter()

	code, resp := doJSON(t, router, http.MethodPost, "/api/v1/validate/entity", `{"entity_id": "light.lounge"}`)
	if code != http.StatusOK {
		t.Fatalf("status = %d, want %d", code, http.StatusOK)
	}
	if resp["exists"] != true {
		t.Errorf("exists = %v, want true", resp["exists"])
	}

	code, resp = doJSON(t, router, http.MethodPost, "/api/v1/validate/entity", `{"entity_id": "light.ghost"}`)
	if code != http.StatusOK {
		t.Fatalf("status = %d, want %d", code, http.StatusOK)
	}
	if resp["exists"] != false {
		t.Errorf("exists = %v, want false", resp["exists"])
	}
}

func TestValidateEntity_RequiresID(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	code, _ := doJSON(t, router, http.MethodPost, "/api/v1/validate/entity", `{}`)
	if code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", code, http.StatusBadRequest)
	}
}

func TestValidateCoordinates(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	t.Run("within bounds", func(t *testing.T) {
		body := `{"object": {"page": 1, "id": 1, "obj": "btn", "x": 10, "y": 10, "w": 100, "h": 50}, "width": 480, "height": 320}`
		code, resp := doJSON(t, router, http.MethodPost, "/api/v1/validate/coordinates", body)
		if code != http.StatusOK {
			t.Fatalf("status = %d, want %d", code, http.StatusOK)
		}
		if resp["valid"] != true {
			t.Errorf("valid = %v, want true", resp["valid"])
		}
	})

	t.Run("out of bounds", func(t *testing.T) {
		body := `{"object": {"page": 1, "id": 1, "obj": "btn", "x": 450, "y": 10, "w": 100, "h": 50}, "width": 480, "height": 320}`
		code, resp := doJSON(t, router, http.MethodPost, "/api/v1/validate/coordinates", body)
		if code != http.StatusOK {
			t.Fatalf("status = %d, want %d", code, http.StatusOK)
		}
		if resp["valid"] != false {
			t.Errorf("valid = %v, want false", resp["valid"])
		}
		if resp["error"] == nil {
			t.Error("expected error detail for out-of-bounds object")
		}
	})

	t.Run("rejects zero size screen", func(t *testing.T) {
		body := `{"object": {"page": 1, "id": 1, "obj": "btn"}, "width": 0, "height": 320}`
		code, _ := doJSON(t, router, http.MethodPost, "/api/v1/validate/coordinates", body)
		if code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", code, http.StatusBadRequest)
		}
	})
}

// ─── YAML Endpoint Tests ───────────────────────────────────────────

func TestGenerateYAML(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	body := `{"objects": [{"page": 1, "id": 1, "obj": "btn", "x": 0, "y": 0, "w": 100, "h": 50, "entity": "light.lounge"}], "device_id": "plate01"}`
	code, resp := doJSON(t, router, http.MethodPost, "/api/v1/yaml", body)
	if code != http.StatusOK {
		t.Fatalf("status = %d, want %d", code, http.StatusOK)
	}
	out, _ := resp["yaml"].(string)
	if out == "" {
		t.Fatal("expected generated YAML")
	}
}

func TestGenerateYAML_RequiresDeviceID(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	code, _ := doJSON(t, router, http.MethodPost, "/api/v1/yaml", `{"objects": []}`)
	if code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", code, http.StatusBadRequest)
	}
}

// ─── Publish Endpoint Tests ────────────────────────────────────────

func TestPublish(t *testing.T) {
	srv, deps := testServer(t)
	router := srv.buildRouter()

	body := `{"objects": [{"page": 1, "id": 1, "obj": "btn", "x": 0, "y": 0, "w": 100, "h": 50}], "device_id": "plate01"}`
	code, resp := doJSON(t, router, http.MethodPost, "/api/v1/publish", body)
	if code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body %v", code, http.StatusOK, resp)
	}
	if deps.deployer.calls != 1 {
		t.Errorf("deploy calls = %d, want 1", deps.deployer.calls)
	}
	deployment := resp["deployment"].(map[string]any)
	if deployment["node"] != "plate01" {
		t.Errorf("node = %v, want plate01", deployment["node"])
	}
}

func TestPublish_ValidationFailureBlocksDeploy(t *testing.T) {
	srv, deps := testServer(t)
	deps.validator.result = validation.Result{
		Passed: false,
		Errors: []validation.Error{{Kind: validation.KindCoordinate, Message: "object extends beyond screen width: 550 > 480", ObjectID: 1}},
	}
	router := srv.buildRouter()

	code, resp := doJSON(t, router, http.MethodPost, "/api/v1/publish", `{"objects": [], "device_id": "plate01"}`)
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", code, http.StatusUnprocessableEntity)
	}
	if deps.deployer.calls != 0 {
		t.Errorf("deploy calls = %d, want 0", deps.deployer.calls)
	}
	if resp["validation"] == nil {
		t.Error("expected validation result in response")
	}
}

func TestPublish_DeployError(t *testing.T) {
	srv, deps := testServer(t)
	deps.deployer.err = errors.New("disk full")
	router := srv.buildRouter()

	code, _ := doJSON(t, router, http.MethodPost, "/api/v1/publish", `{"objects": [], "device_id": "plate01"}`)
	if code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", code, http.StatusInternalServerError)
	}
}

func TestPublish_WithoutDeployer(t *testing.T) {
	srv, _ := testServer(t)
	srv.deployer = nil
	router := srv.buildRouter()

	code, _ := doJSON(t, router, http.MethodPost, "/api/v1/publish", `{"objects": [], "device_id": "plate01"}`)
	if code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", code, http.StatusServiceUnavailable)
	}
}

// ─── Reload Endpoint Tests ─────────────────────────────────────────

func TestReload(t *testing.T) {
	srv, deps := testServer(t)
	router := srv.buildRouter()

	code, resp := doJSON(t, router, http.MethodPost, "/api/v1/reload", "")
	if code != http.StatusOK {
		t.Fatalf("status = %d, want %d", code, http.StatusOK)
	}
	if resp["reloaded"] != true {
		t.Errorf("reloaded = %v, want true", resp["reloaded"])
	}
	if deps.entities.reloads != 1 {
		t.Errorf("reload calls = %d, want 1", deps.entities.reloads)
	}
}

func TestReload_UpstreamError(t *testing.T) {
	srv, deps := testServer(t)
	deps.entities.reloadErr = errors.New("api unreachable")
	router := srv.buildRouter()

	code, _ := doJSON(t, router, http.MethodPost, "/api/v1/reload", "")
	if code != http.StatusBadGateway {
		t.Errorf("status = %d, want %d", code, http.StatusBadGateway)
	}
}

// ─── Import Endpoint Tests ─────────────────────────────────────────

func TestImportEndpoints(t *testing.T) {
	srv, _ := testServer(t)
	dir := t.TempDir()
	content := `{"page":1,"id":0,"obj":"page"}
{"page":1,"id":1,"obj":"btn","x":10,"y":10,"w":100,"h":50,"entity":"light.lounge"}
`
	if err := os.WriteFile(filepath.Join(dir, "plate01.jsonl"), []byte(content), 0o644); err != nil {
		t.Fatalf("write sample config: %v", err)
	}
	srv.importer = importer.New(dir)
	router := srv.buildRouter()

	code, resp := doJSON(t, router, http.MethodGet, "/api/v1/import/available", "")
	if code != http.StatusOK {
		t.Fatalf("list status = %d, want %d", code, http.StatusOK)
	}
	if int(resp["count"].(float64)) != 1 {
		t.Fatalf("count = %v, want 1", resp["count"])
	}

	code, resp = doJSON(t, router, http.MethodPost, "/api/v1/import/plate01.jsonl", "")
	if code != http.StatusOK {
		t.Fatalf("import status = %d, want %d", code, http.StatusOK)
	}
	stats := resp["stats"].(map[string]any)
	if int(stats["objects"].(float64)) != 1 {
		t.Errorf("stats.objects = %v, want 1", stats["objects"])
	}

	code, _ = doJSON(t, router, http.MethodPost, "/api/v1/import/missing.jsonl", "")
	if code != http.StatusNotFound {
		t.Errorf("missing import status = %d, want %d", code, http.StatusNotFound)
	}
}

func TestImport_Unconfigured(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	code, _ := doJSON(t, router, http.MethodGet, "/api/v1/import/available", "")
	if code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", code, http.StatusServiceUnavailable)
	}
}
