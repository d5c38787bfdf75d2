package web

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"userDirectory/internal/metrics"
	"userDirectory/repository"
)

// RouterConfig carries the router's dependencies.
type RouterConfig struct {
	Users          repository.UserRepositoryI
	Log            *logrus.Logger
	MetricsEnabled bool
}

// NewRouter builds the gin engine with the HTML routes.
func NewRouter(rc RouterConfig) (*gin.Engine, error) {
	if rc.Users == nil {
		return nil, fmt.Errorf("users repository is required")
	}
	if rc.Log == nil {
		rc.Log = logrus.StandardLogger()
	}
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(requestID(), accessLog(rc.Log), recovery(rc.Log))
	if rc.MetricsEnabled {
		r.Use(metrics.Middleware())
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}
	r.NoRoute(func(c *gin.Context) { renderError(c, http.StatusNotFound) })

	h := NewUserHandler(rc.Users, rc.Log)
	r.GET("/", h.Index)
	r.GET("/add", h.AddForm)
	r.POST("/add", h.Add)
	r.GET("/edit/:id", h.EditForm)
	r.POST("/edit/:id", h.Edit)
	r.GET("/delete/:id", h.Delete)
	return r, nil
}
