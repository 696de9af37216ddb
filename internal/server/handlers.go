package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kevinmichaelchen/showcase/internal/github"
	"github.com/kevinmichaelchen/showcase/internal/models"
	"github.com/kevinmichaelchen/showcase/internal/pipeline"
	"github.com/kevinmichaelchen/showcase/internal/projects"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type ProjectsResponse struct {
	Projects []models.Project `json:"projects"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "healthy"})
}

// listProjects handles GET /api/projects
func (s *Server) listProjects(c *gin.Context) {
	list, err := pipeline.Projects(c.Request.Context(), s.src, s.cfg)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ProjectsResponse{Projects: list})
}

// getProject handles GET /api/projects/:name
func (s *Server) getProject(c *gin.Context) {
	detail, err := pipeline.Detail(c.Request.Context(), s.src, s.cfg, c.Param("name"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (s *Server) listTechnologies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"technologies": projects.Vocabulary,
		"defaultColor": projects.DefaultColor,
	})
}

func (s *Server) listCategories(c *gin.Context) {
	type category struct {
		Name     string `json:"name"`
		Gradient string `json:"gradient"`
	}
	var out []category
	for _, name := range projects.Categories() {
		out = append(out, category{Name: name, Gradient: projects.Gradient(name)})
	}
	c.JSON(http.StatusOK, gin.H{"categories": out})
}

func (s *Server) fail(c *gin.Context, err error) {
	kind := github.Kind(err)
	c.JSON(statusFor(kind), ErrorResponse{
		Error:   kind,
		Message: github.Message(err),
	})
}

func statusFor(kind string) int {
	switch kind {
	case "config":
		return http.StatusServiceUnavailable
	case "unauthorized":
		return http.StatusUnauthorized
	case "rate_limited":
		return http.StatusTooManyRequests
	case "not_found":
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}
