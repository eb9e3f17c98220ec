package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omegalabs/studio/internal/agent"
	"github.com/omegalabs/studio/internal/genai"
	"github.com/omegalabs/studio/internal/models"
	"github.com/omegalabs/studio/internal/planner"
	"github.com/omegalabs/studio/internal/runner"
	"github.com/omegalabs/studio/internal/session"
	"github.com/omegalabs/studio/internal/store"
)

// stubGen drives both planner and executor calls during API tests.
type stubGen struct {
	plan string
	text string
}

func (g *stubGen) Generate(_ context.Context, _ string, format genai.Format) (string, error) {
	if format == genai.FormatJSON {
		return g.plan, nil
	}
	return g.text, nil
}

func setupTestServer(t *testing.T, gen genai.Generator) (*Server, store.Store) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	s, err := store.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, s.Migrate(context.Background()))
	t.Cleanup(func() { s.Close() })

	r := runner.New(planner.New(gen), agent.New(gen, 0))
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(s, r, log), s
}

func TestListSessions_Empty(t *testing.T) {
	srv, _ := setupTestServer(t, &stubGen{})

	req := httptest.NewRequest("GET", "/api/v1/sessions", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var sessions []models.SessionSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sessions))
	assert.Empty(t, sessions)
}

func TestSessionLifecycle_API(t *testing.T) {
	srv, _ := setupTestServer(t, &stubGen{})
	router := srv.Router()

	// Create
	body := `{"name":"Web App","template":"web-react"}`
	req := httptest.NewRequest("POST", "/api/v1/sessions", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.TemplateWebReact, created.Template)

	// Get
	req = httptest.NewRequest("GET", "/api/v1/sessions/"+created.ID, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Files
	req = httptest.NewRequest("GET", "/api/v1/sessions/"+created.ID+"/files", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var files []models.VirtualFile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &files))
	assert.NotEmpty(t, files)

	// Single file
	req = httptest.NewRequest("GET", "/api/v1/sessions/"+created.ID+"/files/"+files[0].ID, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Delete
	req = httptest.NewRequest("DELETE", "/api/v1/sessions/"+created.ID, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	req = httptest.NewRequest("GET", "/api/v1/sessions/"+created.ID, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateSession_Validation(t *testing.T) {
	srv, _ := setupTestServer(t, &stubGen{})
	router := srv.Router()

	for name, body := range map[string]string{
		"bad json":   "{",
		"empty name": `{"name":"  "}`,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/v1/sessions", bytes.NewBufferString(body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestRunGoal_API(t *testing.T) {
	gen := &stubGen{
		plan: `[{"role":"DEVELOPER","description":"write main"}]`,
		text: "```\nconsole.log('hi')\n```",
	}
	srv, st := setupTestServer(t, gen)
	router := srv.Router()

	sess := session.New("p", models.TemplateWebReact)
	require.NoError(t, st.SaveSession(context.Background(), sess))

	req := httptest.NewRequest("POST", "/api/v1/sessions/"+sess.ID+"/run",
		bytes.NewBufferString(`{"goal":"build it"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Tasks     []models.AgentTask `json:"tasks"`
		Completed int                `json:"completed"`
		Failed    int                `json:"failed"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Tasks, 1)
	assert.Equal(t, 1, resp.Completed)
	assert.Equal(t, models.TaskStatusCompleted, resp.Tasks[0].Status)

	// run results were persisted
	saved, err := st.GetSession(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "console.log('hi')", saved.ActiveFile().Content)
}

func TestRunGoal_EmptyGoal(t *testing.T) {
	srv, st := setupTestServer(t, &stubGen{})

	sess := session.New("p", models.TemplateWebReact)
	require.NoError(t, st.SaveSession(context.Background(), sess))

	req := httptest.NewRequest("POST", "/api/v1/sessions/"+sess.ID+"/run",
		bytes.NewBufferString(`{"goal":"   "}`))
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRunGoal_SessionNotFound(t *testing.T) {
	srv, _ := setupTestServer(t, &stubGen{})

	req := httptest.NewRequest("POST", "/api/v1/sessions/missing/run",
		bytes.NewBufferString(`{"goal":"x"}`))
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCORS_Preflight(t *testing.T) {
	srv, _ := setupTestServer(t, &stubGen{})

	req := httptest.NewRequest("OPTIONS", "/api/v1/sessions", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
