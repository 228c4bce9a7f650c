package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type commandRequest struct {
	Command *string `json:"command"`
}

type moveRequest struct {
	J1 *int64 `json:"j1"`
	J2 *int64 `json:"j2"`
	J3 *int64 `json:"j3"`
	J4 *int64 `json:"j4"`
	J5 *int64 `json:"j5"`
	J6 *int64 `json:"j6"`
}

func (r moveRequest) values() []*int64 {
	return []*int64{r.J1, r.J2, r.J3, r.J4, r.J5, r.J6}
}

type enableRequest struct {
	Enabled bool `json:"enabled"`
}

func (s *Server) registerRoutes() {
	s.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.started).String(),
			"service": "armctl",
		})
	})

	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// POST /api/command executes one raw command line.
	s.engine.POST("/api/command", func(c *gin.Context) {
		var req commandRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid JSON"})
			return
		}
		if req.Command == nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing 'command' field"})
			return
		}

		res := s.interp.Execute(*req.Command)
		status := http.StatusOK
		if !res.Success {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{
			"success": res.Success,
			"message": res.Message(),
		})
	})

	// POST /api/move synthesizes a G0 line from per-joint fields.
	s.engine.POST("/api/move", func(c *gin.Context) {
		var req moveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid JSON"})
			return
		}

		var b strings.Builder
		b.WriteString("G0")
		hasJoint := false
		for i, v := range req.values() {
			if i >= s.coord.Registry().Len() {
				break
			}
			if v != nil {
				fmt.Fprintf(&b, " J%d:%d", i+1, *v)
				hasJoint = true
			}
		}
		if !hasJoint {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "No joint positions specified. Use j1, j2, ..., j6",
			})
			return
		}

		command := b.String()
		res := s.interp.Execute(command)
		status := http.StatusOK
		if !res.Success {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{
			"success": res.Success,
			"message": res.Message(),
			"command": command,
		})
	})

	// POST /api/enable toggles the safety gate; it always succeeds.
	s.engine.POST("/api/enable", func(c *gin.Context) {
		var req enableRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid JSON"})
			return
		}
		s.coord.SetEnabled(req.Enabled)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"enabled": s.coord.Enabled(),
		})
	})

	// GET /api/status is a read-only snapshot.
	s.engine.GET("/api/status", func(c *gin.Context) {
		n := s.coord.Registry().Len()
		positions := gin.H{}
		targets := gin.H{}
		distances := gin.H{}
		for i := 0; i < n; i++ {
			key := fmt.Sprintf("j%d", i+1)
			positions[key] = s.coord.Position(i)
			targets[key] = s.coord.Target(i)
			distances[key] = s.coord.DistanceToGo(i)
		}
		c.JSON(http.StatusOK, gin.H{
			"enabled":   s.coord.Enabled(),
			"moving":    s.coord.IsAnyMoving(),
			"positions": positions,
			"targets":   targets,
			"distances": distances,
		})
	})

	// GET /api/config is the static joint table.
	s.engine.GET("/api/config", func(c *gin.Context) {
		reg := s.coord.Registry()
		joints := make([]gin.H, 0, reg.Len())
		for i := 0; i < reg.Len(); i++ {
			cfg := reg.Config(i)
			joints = append(joints, gin.H{
				"name":          cfg.Name,
				"step_pin":      cfg.StepPin,
				"dir_pin":       cfg.DirPin,
				"steps_per_rev": cfg.StepsPerRev,
				"microstep":     cfg.Microstep,
				"max_speed_hz":  cfg.MaxSpeedHz,
				"acceleration":  cfg.Acceleration,
				"invert_dir":    cfg.InvertDir,
				"min_position":  cfg.MinPosition,
				"max_position":  cfg.MaxPosition,
			})
		}
		c.JSON(http.StatusOK, gin.H{"joints": joints})
	})

	s.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
}
