package httpserver

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zero360/researchlab/internal/interview"
	"github.com/zero360/researchlab/internal/persona"
	"github.com/zero360/researchlab/internal/product"
	"github.com/zero360/researchlab/internal/questions"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestServer runs on the demo provider so no credentials or
// network are needed.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := New(Config{Port: "0", Provider: "demo"}, quietLogger())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func doRequest(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeSession(t *testing.T, w *httptest.ResponseRecorder) interview.Session {
	t.Helper()
	var sess interview.Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sess))
	return sess
}

func createSession(t *testing.T, s *Server, body any) interview.Session {
	t.Helper()
	w := doRequest(t, s, http.MethodPost, "/api/v1/sessions", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeSession(t, w)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestCreateSessionDefaults(t *testing.T) {
	s := newTestServer(t)

	sess := createSession(t, s, nil)

	assert.Len(t, sess.ID, 26)
	assert.NotEmpty(t, sess.Persona.Name)
	assert.Equal(t, product.Catalog()[0].Name, sess.Product.Name)
	assert.True(t, sess.Active)
	assert.Empty(t, sess.Transcript)
	assert.InDelta(t, 0.5, sess.Metrics.SentimentScore, 0.001)
}

func TestCreateSessionByArchetype(t *testing.T) {
	s := newTestServer(t)

	sess := createSession(t, s, gin.H{"archetype": "architektin"})

	assert.Equal(t, "Julia Schneider", sess.Persona.Name)
	assert.Equal(t, persona.ArchetypeArchitektin, sess.Persona.Archetype)
}

func TestCreateSessionUnknownArchetype(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodPost, "/api/v1/sessions", gin.H{"archetype": "astronaut"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown archetype")
}

func TestCreateSessionByProductName(t *testing.T) {
	s := newTestServer(t)

	t.Run("catalog entry", func(t *testing.T) {
		sess := createSession(t, s, gin.H{"product_name": "zero360 Connect Hub"})
		assert.Equal(t, "zero360 Connect Hub", sess.Product.Name)
		assert.NotEmpty(t, sess.Product.Description)
	})

	t.Run("custom product", func(t *testing.T) {
		sess := createSession(t, s, gin.H{"product_name": "Prototyp X"})
		assert.Equal(t, "Prototyp X", sess.Product.Name)
		assert.Empty(t, sess.Product.Description)
	})
}

func TestAskRecordsExchange(t *testing.T) {
	s := newTestServer(t)
	sess := createSession(t, s, gin.H{"archetype": "installateur"})

	w := doRequest(t, s, http.MethodPost, "/api/v1/sessions/"+sess.ID+"/ask",
		gin.H{"question": "Was halten Sie von dem Produkt?"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Reply  string `json:"reply"`
		Failed bool   `json:"failed"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Reply)
	assert.False(t, resp.Failed)

	got := decodeSession(t, doRequest(t, s, http.MethodGet, "/api/v1/sessions/"+sess.ID, nil))
	require.Len(t, got.Transcript, 2)
	assert.Equal(t, interview.RoleInterviewer, got.Transcript[0].Role)
	assert.Equal(t, "Was halten Sie von dem Produkt?", got.Transcript[0].Content)
	assert.Equal(t, interview.RolePersona, got.Transcript[1].Role)
	assert.Equal(t, resp.Reply, got.Transcript[1].Content)
}

func TestAskValidation(t *testing.T) {
	s := newTestServer(t)
	sess := createSession(t, s, nil)

	t.Run("missing question", func(t *testing.T) {
		w := doRequest(t, s, http.MethodPost, "/api/v1/sessions/"+sess.ID+"/ask", gin.H{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "question is required")
	})

	t.Run("ended session", func(t *testing.T) {
		w := doRequest(t, s, http.MethodDelete, "/api/v1/sessions/"+sess.ID, nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = doRequest(t, s, http.MethodPost, "/api/v1/sessions/"+sess.ID+"/ask",
			gin.H{"question": "Noch eine Frage?"})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "session has ended")
	})
}

func TestRunInterviewWithExplicitQuestions(t *testing.T) {
	s := newTestServer(t)
	sess := createSession(t, s, gin.H{"archetype": "modernisiererin"})

	w := doRequest(t, s, http.MethodPost, "/api/v1/sessions/"+sess.ID+"/interview",
		gin.H{"questions": []string{"Erste Frage?", "Zweite Frage?"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	got := decodeSession(t, w)
	require.Len(t, got.Transcript, 4)
	assert.Equal(t, "Erste Frage?", got.Transcript[0].Content)
	assert.Equal(t, "Zweite Frage?", got.Transcript[2].Content)
	assert.GreaterOrEqual(t, got.Metrics.SentimentScore, 0.0)
	assert.LessOrEqual(t, got.Metrics.SentimentScore, 1.0)
}

func TestRunInterviewGeneratesQuestions(t *testing.T) {
	s := newTestServer(t)
	sess := createSession(t, s, nil)

	// Demo mode has no question model and serves the full fallback
	// script.
	w := doRequest(t, s, http.MethodPost, "/api/v1/sessions/"+sess.ID+"/interview", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	got := decodeSession(t, w)
	wantQuestions := len(questions.Fallback(sess.Product.Name))
	assert.Len(t, got.Transcript, 2*wantQuestions)
}

func TestSuggestionsReturnsThree(t *testing.T) {
	s := newTestServer(t)
	sess := createSession(t, s, gin.H{"archetype": "rentner"})

	w := doRequest(t, s, http.MethodGet, "/api/v1/sessions/"+sess.ID+"/suggestions", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Suggestions []string `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Suggestions, 3)
}

func TestMetricsForFreshSession(t *testing.T) {
	s := newTestServer(t)
	sess := createSession(t, s, nil)

	w := doRequest(t, s, http.MethodGet, "/api/v1/sessions/"+sess.ID+"/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var m struct {
		SentimentScore float64 `json:"sentiment_score"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	assert.InDelta(t, 0.5, m.SentimentScore, 0.001)
}

func TestExportFormats(t *testing.T) {
	s := newTestServer(t)
	sess := createSession(t, s, nil)

	w := doRequest(t, s, http.MethodPost, "/api/v1/sessions/"+sess.ID+"/ask",
		gin.H{"question": "Wie finden Sie das?"})
	require.Equal(t, http.StatusOK, w.Code)

	t.Run("json", func(t *testing.T) {
		w := doRequest(t, s, http.MethodGet, "/api/v1/sessions/"+sess.ID+"/export", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
		assert.Contains(t, w.Body.String(), "\"research_session\"")
		assert.Contains(t, w.Body.String(), sess.ID)
	})

	t.Run("csv", func(t *testing.T) {
		w := doRequest(t, s, http.MethodGet, "/api/v1/sessions/"+sess.ID+"/export?format=csv", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
		assert.True(t, strings.HasPrefix(w.Body.String(), "Timestamp,Role,Message"))
		assert.Contains(t, w.Body.String(), "interviewer,Wie finden Sie das?")
	})

	t.Run("report", func(t *testing.T) {
		w := doRequest(t, s, http.MethodGet, "/api/v1/sessions/"+sess.ID+"/export?format=report", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, strings.HasPrefix(w.Body.String(), "# Autonomous User Research Report"))
	})

	t.Run("invalid", func(t *testing.T) {
		w := doRequest(t, s, http.MethodGet, "/api/v1/sessions/"+sess.ID+"/export?format=xml", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSessionNotFound(t *testing.T) {
	s := newTestServer(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/sessions/missing"},
		{http.MethodDelete, "/api/v1/sessions/missing"},
		{http.MethodPost, "/api/v1/sessions/missing/interview"},
		{http.MethodGet, "/api/v1/sessions/missing/suggestions"},
		{http.MethodGet, "/api/v1/sessions/missing/metrics"},
		{http.MethodGet, "/api/v1/sessions/missing/export"},
	}
	for _, p := range paths {
		w := doRequest(t, s, p.method, p.path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, p.path)
	}

	w := doRequest(t, s, http.MethodPost, "/api/v1/sessions/missing/ask", gin.H{"question": "Hallo?"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListSessionsNewestFirst(t *testing.T) {
	s := newTestServer(t)
	first := createSession(t, s, nil)
	second := createSession(t, s, nil)

	w := doRequest(t, s, http.MethodGet, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Sessions []interview.Session `json:"sessions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Sessions, 2)
	assert.Equal(t, second.ID, resp.Sessions[0].ID)
	assert.Equal(t, first.ID, resp.Sessions[1].ID)
}

func TestCatalogEndpoints(t *testing.T) {
	s := newTestServer(t)

	t.Run("personas", func(t *testing.T) {
		w := doRequest(t, s, http.MethodGet, "/api/v1/personas/examples", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Personas []persona.Persona `json:"personas"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Personas, len(persona.Examples()))
	})

	t.Run("products", func(t *testing.T) {
		w := doRequest(t, s, http.MethodGet, "/api/v1/products", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Products []product.Product `json:"products"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Products, len(product.Catalog()))
	})

	t.Run("segments", func(t *testing.T) {
		w := doRequest(t, s, http.MethodGet, "/api/v1/segments", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Segments []persona.Segment `json:"segments"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Segments, len(persona.Segments()))
	})
}

func TestDefaultConfigReadsEnv(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("RESEARCH_PROVIDER", "demo")

	cfg := DefaultConfig()

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, "demo", cfg.Provider)
	assert.Empty(t, cfg.Model)
}

func TestNewRejectsUnknownProvider(t *testing.T) {
	_, err := New(Config{Provider: "hal9000"}, quietLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown dialogue provider")
}
