// Package httpserver exposes interview sessions over a REST API, so
// the research tooling can drive interviews from scripts or a web
// frontend instead of the CLI.
package httpserver

import (
	"log/slog"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/zero360/researchlab/internal/config"
	"github.com/zero360/researchlab/internal/dialogue"
	"github.com/zero360/researchlab/internal/interview"
	"github.com/zero360/researchlab/internal/persona"
	"github.com/zero360/researchlab/internal/questions"
)

// Config holds the server configuration.
type Config struct {
	Port     string
	Provider string
	Model    string
}

// DefaultConfig builds a config from environment variables.
func DefaultConfig() Config {
	return Config{
		Port:     config.EnvOr("PORT", "8080"),
		Provider: config.EnvOr("RESEARCH_PROVIDER", "claude"),
		Model:    config.EnvOr("RESEARCH_MODEL", ""),
	}
}

// Server drives interview sessions over HTTP. One dialogue engine is
// shared across all sessions.
type Server struct {
	cfg         Config
	log         *slog.Logger
	engine      dialogue.Engine
	personaGen  *persona.Generator
	questionGen *questions.Generator
	sessions    *sessionRegistry
	router      *gin.Engine
}

// New creates the server and its dialogue engine. An unconfigured
// hosted provider still constructs; its sessions answer with the
// fail-soft apology until credentials appear.
func New(cfg Config, log *slog.Logger) (*Server, error) {
	if log == nil {
		log = slog.Default()
	}

	engine, err := dialogue.NewEngine(cfg.Provider, cfg.Model)
	if err != nil {
		return nil, err
	}

	// The demo engine's generator output is not parseable persona
	// JSON, so demo mode serves the built-in pools instead.
	var personaLLM persona.TextGenerator
	var questionLLM questions.TextGenerator
	if cfg.Provider != "demo" {
		personaLLM = engine
		questionLLM = engine
	}

	s := &Server{
		cfg:         cfg,
		log:         log,
		engine:      engine,
		personaGen:  persona.NewGenerator(personaLLM, log),
		questionGen: questions.NewGenerator(questionLLM, log),
		sessions:    newSessionRegistry(),
	}
	s.router = s.buildRouter()
	return s, nil
}

func (s *Server) buildRouter() *gin.Engine {
	router := gin.Default()

	router.GET("/health", s.handleHealth)

	api := router.Group("/api/v1")
	api.POST("/sessions", s.handleCreateSession)
	api.GET("/sessions", s.handleListSessions)
	api.GET("/sessions/:id", s.handleGetSession)
	api.DELETE("/sessions/:id", s.handleEndSession)
	api.POST("/sessions/:id/interview", s.handleRunInterview)
	api.POST("/sessions/:id/ask", s.handleAsk)
	api.GET("/sessions/:id/suggestions", s.handleSuggestions)
	api.GET("/sessions/:id/metrics", s.handleMetrics)
	api.GET("/sessions/:id/export", s.handleExport)
	api.GET("/personas/examples", s.handleExamplePersonas)
	api.GET("/products", s.handleProducts)
	api.GET("/segments", s.handleSegments)

	return router
}

// Run starts the server and blocks until it fails.
func (s *Server) Run() error {
	s.log.Info("HTTP server listening",
		"port", s.cfg.Port,
		"provider", s.engine.Name())
	return s.router.Run(":" + s.cfg.Port)
}

// Close releases the dialogue engine.
func (s *Server) Close() error {
	return s.engine.Close()
}

// sessionRegistry is the in-memory session store. The mutex guards
// the map only; session mutation is single-writer by contract.
type sessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*interview.Session
	order    []string
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{sessions: map[string]*interview.Session{}}
}

func (r *sessionRegistry) add(sess *interview.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sess.ID] = sess
	r.order = append(r.order, sess.ID)
}

func (r *sessionRegistry) get(id string) (*interview.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[id]
	return sess, ok
}

// list returns the sessions newest first.
func (r *sessionRegistry) list() []*interview.Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*interview.Session, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		out = append(out, r.sessions[r.order[i]])
	}
	return out
}
