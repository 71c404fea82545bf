package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/eflow-hydraulics/hdf-inspector/internal/models"
	"github.com/eflow-hydraulics/hdf-inspector/pkg/config"
	"github.com/eflow-hydraulics/hdf-inspector/pkg/inspector"
	"github.com/eflow-hydraulics/hdf-inspector/pkg/telemetry"
)

// Server is the HTTP façade over the inspector. Every endpoint is
// read-only; operation failures come back as tagged records with an
// "error" field rather than as transport failures, so the UI layer can
// render them directly.
type Server struct {
	config    *config.Config
	logger    *logrus.Logger
	inspector *inspector.Inspector
	engine    *gin.Engine
	server    *http.Server
}

// New creates a new server instance
func New(cfg *config.Config, logger *logrus.Logger) (*Server, error) {
	ins, err := inspector.New(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create inspector: %w", err)
	}

	if logger.Level == logrus.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(ginLogger(logger))

	if cfg.Telemetry.Enabled {
		engine.Use(otelgin.Middleware("hdf-inspector"))
	}

	engine.Use(corsMiddleware())

	if cfg.Server.SessionAPIKey != "" {
		engine.Use(authMiddleware(cfg.Server.SessionAPIKey))
	}

	server := &Server{
		config:    cfg,
		logger:    logger,
		inspector: ins,
		engine:    engine,
	}
	server.setupRoutes()

	return server, nil
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.config.Server.Port),
		Handler: s.engine,
	}

	s.logger.Infof("Starting server on port %d", s.config.Server.Port)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Engine returns the gin engine for testing purposes
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.engine.GET("/alive", s.handleAlive)
	s.engine.GET("/server_info", s.handleServerInfo)

	// Inspection operations, one POST endpoint per operation
	s.engine.POST("/info", s.handleInfo)
	s.engine.POST("/structure", s.handleStructure)
	s.engine.POST("/datasets", s.handleDatasets)
	s.engine.POST("/extract", s.handleExtract)
	s.engine.POST("/sample", s.handleSample)
	s.engine.POST("/find", s.handleFind)
}

// handleAlive handles health check requests
func (s *Server) handleAlive(c *gin.Context) {
	if s.inspector == nil {
		c.JSON(http.StatusOK, gin.H{"status": "not initialized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleServerInfo handles server info requests
func (s *Server) handleServerInfo(c *gin.Context) {
	currentTime := time.Now()
	info := s.inspector.GetServerInfo()

	response := models.ServerInfoResponse{
		Uptime:       currentTime.Sub(info.StartTime).Seconds(),
		IdleTime:     currentTime.Sub(info.LastRequestTime).Seconds(),
		PatternTable: info.PatternTable,
		Resources:    info.SystemStats,
	}

	c.JSON(http.StatusOK, response)
}

func (s *Server) handleInfo(c *gin.Context) {
	var req models.FileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	info := s.inspector.Info(c.Request.Context(), req.FilePath)

	if s.config.Telemetry.Enabled {
		telemetry.ReportJSON(c.Request.Context(), s.logger, "info_response", info)
	}
	c.JSON(http.StatusOK, info)
}

func (s *Server) handleStructure(c *gin.Context) {
	var req models.StructureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	opts := inspector.StructureOptions{
		MaxDepth:          s.config.Inspect.MaxDepth,
		IncludeAttributes: req.IncludeAttributes,
	}
	if req.MaxDepth != nil {
		opts.MaxDepth = *req.MaxDepth
	}

	st, err := s.inspector.Structure(c.Request.Context(), req.FilePath, opts)
	if err != nil {
		s.respondError(c, "structure", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (s *Server) handleDatasets(c *gin.Context) {
	var req models.FileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	paths, err := s.inspector.Datasets(c.Request.Context(), req.FilePath)
	if err != nil {
		s.respondError(c, "datasets", err)
		return
	}
	c.JSON(http.StatusOK, models.DatasetsResponse{
		FilePath: req.FilePath,
		Datasets: paths,
	})
}

func (s *Server) handleExtract(c *gin.Context) {
	var req models.FileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	data, err := s.inspector.Extract(c.Request.Context(), req.FilePath)
	if err != nil {
		s.respondError(c, "extract", err)
		return
	}

	if s.config.Telemetry.Enabled {
		telemetry.ReportJSON(c.Request.Context(), s.logger, "extract_summary", data.ExtractionSummary)
	}
	c.JSON(http.StatusOK, data)
}

func (s *Server) handleSample(c *gin.Context) {
	var req models.SampleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vals, err := s.inspector.Sample(c.Request.Context(), req.FilePath, req.DatasetPath, req.MaxElements)
	if err != nil {
		s.respondError(c, "sample", err)
		return
	}
	c.JSON(http.StatusOK, models.SampleResponse{
		FilePath:    req.FilePath,
		DatasetPath: req.DatasetPath,
		Values:      vals,
	})
}

func (s *Server) handleFind(c *gin.Context) {
	var req models.FindRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	files, err := s.inspector.Find(c.Request.Context(), req.FolderPath)
	if err != nil {
		s.respondError(c, "find", err)
		return
	}
	c.JSON(http.StatusOK, files)
}

// respondError turns an operation failure into the tagged error record.
// The status stays 200: the caller asked a well-formed question and gets
// a well-formed answer whose payload says the operation failed.
func (s *Server) respondError(c *gin.Context, op string, err error) {
	s.logger.Warnf("Operation %s failed: %v", op, err)
	if s.config.Telemetry.Enabled {
		telemetry.ReportJSON(c.Request.Context(), s.logger, op+"_error", map[string]interface{}{
			"error": err.Error(),
		})
	}
	c.JSON(http.StatusOK, models.ErrorResponse{Error: err.Error()})
}

// ginLogger creates a gin logger middleware using logrus
func ginLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()

		entry := logger.WithFields(logrus.Fields{
			"status":  statusCode,
			"method":  c.Request.Method,
			"path":    path,
			"ip":      c.ClientIP(),
			"latency": latency,
		})
		if raw != "" {
			entry = entry.WithField("query", raw)
		}

		if statusCode >= 500 {
			entry.Error("Server error")
		} else if statusCode >= 400 {
			entry.Warn("Client error")
		} else {
			entry.Info("Request completed")
		}
	}
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, Authorization, X-Session-API-Key")
		c.Header("Access-Control-Allow-Credentials", "true")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// authMiddleware validates API key
func authMiddleware(expectedAPIKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("X-Session-API-Key")
		if apiKey != expectedAPIKey {
			c.JSON(http.StatusForbidden, gin.H{"error": "Invalid API Key"})
			c.Abort()
			return
		}
		c.Next()
	}
}
