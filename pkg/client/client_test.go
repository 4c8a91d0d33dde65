package client_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caseflow/caseflow/pkg/client"
	"github.com/caseflow/caseflow/pkg/models"
	"github.com/caseflow/caseflow/pkg/wizard"
)

// The client is the editor's persister.
var _ wizard.Persister = (*client.Client)(nil)

func TestClient_CreateAndGet(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/workflows":
			var draft models.Workflow
			require.NoError(t, json.NewDecoder(r.Body).Decode(&draft))
			assert.Equal(t, "Welcome email", draft.Name)

			draft.ID = "wf-1"
			w.WriteHeader(http.StatusCreated)
			require.NoError(t, json.NewEncoder(w).Encode(draft))
		case r.Method == http.MethodGet && r.URL.Path == "/workflows/wf-1":
			require.NoError(t, json.NewEncoder(w).Encode(models.Workflow{ID: "wf-1", Name: "Welcome email"}))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c := client.New(server.URL)

	created, err := c.Create(t.Context(), &models.Workflow{Name: "Welcome email"})
	require.NoError(t, err)
	assert.Equal(t, "wf-1", created.ID)

	fetched, err := c.Get(t.Context(), "wf-1")
	require.NoError(t, err)
	assert.Equal(t, "Welcome email", fetched.Name)
}

func TestClient_Update(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/workflows/wf-1", r.URL.Path)

		var draft models.Workflow
		require.NoError(t, json.NewDecoder(r.Body).Decode(&draft))

		draft.ID = "wf-1"
		require.NoError(t, json.NewEncoder(w).Encode(draft))
	}))
	defer server.Close()

	c := client.New(server.URL)

	updated, err := c.Update(t.Context(), "wf-1", &models.Workflow{Name: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
}

func TestClient_ProblemDetails(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"type":"validation_error","title":"Bad Request","status":400,"detail":"Workflow name is required."}`))
	}))
	defer server.Close()

	c := client.New(server.URL)

	_, err := c.Create(t.Context(), &models.Workflow{})
	require.Error(t, err)

	problem, ok := err.(*client.ProblemError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, problem.Status)
	assert.Equal(t, "Workflow name is required.", problem.Detail)
	assert.Equal(t, "Workflow name is required.", err.Error())
}

func TestClient_NotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"type":"workflow_not_found","title":"Not Found","status":404,"detail":"workflow not found"}`))
	}))
	defer server.Close()

	c := client.New(server.URL)

	_, err := c.Get(t.Context(), "missing")
	require.Error(t, err)
	assert.True(t, client.IsNotFound(err))
}

func TestClient_DeleteAndOptions(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodDelete && r.URL.Path == "/workflows/wf-1":
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodGet && r.URL.Path == "/workflows/options":
			require.NoError(t, json.NewEncoder(w).Encode(models.WorkflowOptions{
				ConditionFields: []string{"status"},
				ActionTypes:     []models.Option{{Value: "add_note", Label: "Add note"}},
			}))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c := client.New(server.URL)

	require.NoError(t, c.Delete(t.Context(), "wf-1"))

	options, err := c.Options(t.Context())
	require.NoError(t, err)
	assert.Equal(t, []string{"status"}, options.ConditionFields)
}

func TestClient_TestRun(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/workflows/wf-1/test", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "case-1", body["entity_id"])

		require.NoError(t, json.NewEncoder(w).Encode(models.TestRunResult{ConditionsMatched: true}))
	}))
	defer server.Close()

	c := client.New(server.URL)

	result, err := c.TestRun(t.Context(), "wf-1", "case-1")
	require.NoError(t, err)
	assert.True(t, result.ConditionsMatched)
}
