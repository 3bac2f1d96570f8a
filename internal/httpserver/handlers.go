package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zero360/researchlab/internal/export"
	"github.com/zero360/researchlab/internal/interview"
	"github.com/zero360/researchlab/internal/persona"
	"github.com/zero360/researchlab/internal/product"
	"github.com/zero360/researchlab/internal/questions"
	"github.com/zero360/researchlab/internal/research"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// createSessionRequest selects who is interviewed about what. All
// fields are optional: an explicit persona wins over an archetype,
// otherwise a fresh persona is generated; an explicit product wins
// over a catalog name, otherwise the first catalog entry is used.
type createSessionRequest struct {
	Persona     *persona.Persona `json:"persona"`
	Archetype   string           `json:"archetype"`
	Product     *product.Product `json:"product"`
	ProductName string           `json:"product_name"`
}

func (s *Server) handleCreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	var p persona.Persona
	switch {
	case req.Persona != nil:
		p = *req.Persona
	case req.Archetype != "":
		example, ok := persona.ExampleByArchetype(persona.Archetype(req.Archetype))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown archetype: " + req.Archetype})
			return
		}
		p = example
	default:
		p = s.personaGen.GenerateDiverse(c.Request.Context())
	}

	var prod product.Product
	switch {
	case req.Product != nil:
		prod = *req.Product
	case req.ProductName != "":
		found, ok := product.Find(req.ProductName)
		if !ok {
			found = product.Product{Name: req.ProductName}
		}
		prod = found
	default:
		prod = product.Catalog()[0]
	}
	if err := prod.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := interview.NewSession(p, prod)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	s.sessions.add(sess)

	s.log.Info("Session created",
		"session_id", sess.ID,
		"persona", sess.Persona.Name,
		"product", sess.Product.Name)
	c.JSON(http.StatusCreated, sess)
}

func (s *Server) handleListSessions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sessions": s.sessions.list()})
}

func (s *Server) handleGetSession(c *gin.Context) {
	sess, ok := s.sessions.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (s *Server) handleEndSession(c *gin.Context) {
	sess, ok := s.sessions.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	sess.End()
	c.JSON(http.StatusOK, sess)
}

type askRequest struct {
	Question string `json:"question"`
}

func (s *Server) handleAsk(c *gin.Context) {
	sess, ok := s.sessions.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	if !sess.Active {
		c.JSON(http.StatusConflict, gin.H{"error": "session has ended"})
		return
	}

	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if req.Question == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
		return
	}

	reply := sess.Ask(c.Request.Context(), s.engine, req.Question)
	c.JSON(http.StatusOK, gin.H{
		"reply":   reply.Text,
		"failed":  reply.Failed,
		"metrics": sess.Metrics,
	})
}

// runInterviewRequest scripts a full interview in one call. Without
// explicit questions a list is generated (or drawn from the fallback
// pool) for the session's persona and product.
type runInterviewRequest struct {
	Questions    []string `json:"questions"`
	NumQuestions int      `json:"num_questions"`
}

func (s *Server) handleRunInterview(c *gin.Context) {
	sess, ok := s.sessions.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	if !sess.Active {
		c.JSON(http.StatusConflict, gin.H{"error": "session has ended"})
		return
	}

	var req runInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	qs := req.Questions
	if len(qs) == 0 {
		qs = s.questionGen.Generate(c.Request.Context(), sess.Persona, sess.Product, req.NumQuestions)
	}

	o := interview.NewOrchestrator(s.engine, nil, s.log)
	t, err := o.Run(c.Request.Context(), sess.Persona, sess.Product, qs)

	// Keep whatever completed, even when the client went away.
	sess.Transcript = append(sess.Transcript, t...)
	sess.RefreshMetrics()

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (s *Server) handleSuggestions(c *gin.Context) {
	sess, ok := s.sessions.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"suggestions": questions.Suggest(sess.Persona, sess.Product, sess.Transcript),
	})
}

func (s *Server) handleMetrics(c *gin.Context) {
	sess, ok := s.sessions.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, sess.Metrics)
}

func (s *Server) handleExport(c *gin.Context) {
	sess, ok := s.sessions.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	bundle := export.New(sess.Product, []research.Interview{{
		ID:         sess.ID,
		Persona:    sess.Persona,
		Transcript: sess.Transcript,
		Metrics:    sess.Metrics,
		StartedAt:  sess.CreatedAt,
		Status:     research.StatusCompleted,
	}}, time.Now())

	switch c.DefaultQuery("format", "json") {
	case "json":
		c.Header("Content-Type", "application/json")
		if err := export.WriteJSON(c.Writer, bundle); err != nil {
			s.log.Error("Export failed", "session_id", sess.ID, "error", err)
		}
	case "csv":
		// A single session exports its conversation, not the one-row
		// summary table the batch runner writes.
		c.Header("Content-Type", "text/csv")
		if err := export.WriteTranscriptCSV(c.Writer, bundle.Interviews[0].Conversation); err != nil {
			s.log.Error("Export failed", "session_id", sess.ID, "error", err)
		}
	case "report":
		c.Header("Content-Type", "text/markdown")
		if err := export.WriteReport(c.Writer, bundle); err != nil {
			s.log.Error("Export failed", "session_id", sess.ID, "error", err)
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid format: choose json, csv, or report"})
	}
}

func (s *Server) handleExamplePersonas(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"personas": persona.Examples()})
}

func (s *Server) handleProducts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"products": product.Catalog()})
}

func (s *Server) handleSegments(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"segments": persona.Segments()})
}
