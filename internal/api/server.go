package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/armkit/armctl/internal/gcode"
	"github.com/armkit/armctl/internal/motion"
	"github.com/armkit/armctl/internal/observability"
)

// Server exposes the command interpreter and coordinator over HTTP.
// It holds references to both rather than ambient globals so tests can
// stand up isolated instances.
type Server struct {
	engine  *gin.Engine
	coord   *motion.Coordinator
	interp  *gcode.Interpreter
	log     zerolog.Logger
	started time.Time
}

func NewServer(coord *motion.Coordinator, interp *gcode.Interpreter, log zerolog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(observability.RequestLogger(log))
	engine.Use(observability.RequestMetrics())
	engine.Use(corsHeaders())

	s := &Server{
		engine:  engine,
		coord:   coord,
		interp:  interp,
		log:     log,
		started: time.Now(),
	}
	s.registerRoutes()
	return s
}

// Handler returns the HTTP handler, used directly by httptest.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves until the listener fails.
func (s *Server) Run(addr string) error {
	s.log.Info().Str("addr", addr).Msg("http server starting")
	return s.engine.Run(addr)
}

func corsHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}
