package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gdlandscaping/sitegen/internal/admin"
	"github.com/gdlandscaping/sitegen/internal/logger"
	"github.com/gdlandscaping/sitegen/pkg/content"
	"github.com/gdlandscaping/sitegen/pkg/leads"
	"github.com/gdlandscaping/sitegen/pkg/orchestrator"
	"github.com/gdlandscaping/sitegen/pkg/render"
)

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", s.handleHealth)
	s.engine.GET("/sitemap.xml", s.handleSitemap)
	s.engine.POST("/api/leads", s.handleLeadSubmit)
	s.engine.GET("/api/gis", s.proxy.Handle)

	if s.inquiries != nil {
		group := s.engine.Group("/api/admin", tokenAuthMiddleware(s.cfg.Admin.APIToken))
		group.GET("/inquiries", s.handleInquiryList)
		group.GET("/inquiries/:id", s.handleInquiryGet)
		group.PATCH("/inquiries/:id", s.handleInquiryUpdate)
		group.DELETE("/inquiries/:id", s.handleInquiryDelete)
	}

	// Every content page routes through the resolver, so the route table
	// stays the single source of truth.
	s.engine.NoRoute(s.handlePage)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleSitemap(c *gin.Context) {
	body, err := s.sitemaps.Generate()
	if err != nil {
		s.log.Error("sitemap generation failed", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sitemap unavailable", "status": http.StatusInternalServerError})
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}

func (s *Server) handlePage(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed", "status": http.StatusMethodNotAllowed})
		return
	}
	s.renderPage(c, c.Request.URL.Path, render.Options{})
}

func (s *Server) renderPage(c *gin.Context, path string, options render.Options) {
	result, err := s.orch.Generate(c.Request.Context(), orchestrator.Request{
		Path:    path,
		Options: options,
	})
	status := http.StatusOK
	switch {
	case content.IsNotFound(err):
		status = http.StatusNotFound
	case err != nil:
		s.log.Error("page render failed", logger.String("path", path), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "page unavailable", "status": http.StatusInternalServerError})
		return
	}
	if options.FormError != "" {
		status = http.StatusBadGateway
	}
	c.Data(status, result.ContentType, result.Body)
}

// handleLeadSubmit relays a quote form to the intake endpoint. The source
// page tag decides which page re-renders on failure.
func (s *Server) handleLeadSubmit(c *gin.Context) {
	source := c.PostForm("source")
	form := leads.Form{
		CustomerName:      c.PostForm("customerName"),
		CustomerEmail:     c.PostForm("customerEmail"),
		CustomerPhone:     c.PostForm("customerPhone"),
		Address:           c.PostForm("address"),
		ServicesRequested: c.PostForm("servicesRequested"),
		Budget:            c.PostForm("budget"),
		Message:           c.PostForm("message"),
	}

	submission, err := leads.NewSubmission(source, form)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "status": http.StatusBadRequest})
		return
	}

	if s.relay != nil {
		if err := s.relay.Send(c.Request.Context(), submission); err != nil {
			s.log.Error("lead relay failed",
				logger.String("source", submission.SourcePageID),
				logger.Error(err))
			s.renderPage(c, s.sourcePath(source), render.Options{
				FormError: "We couldn't send your request just now. Please try again, or call us directly.",
				Values:    formValues(form),
			})
			return
		}
	}

	if s.inquiries != nil {
		if err := s.inquiries.Create(c.Request.Context(), admin.FromSubmission(submission)); err != nil {
			// The lead already reached the intake endpoint; losing the admin
			// copy is log-worthy but not visitor-facing.
			s.log.Error("inquiry store failed",
				logger.String("id", submission.ID),
				logger.Error(err))
		}
	}

	s.log.Info("lead relayed",
		logger.String("id", submission.ID),
		logger.String("source", submission.SourcePageID))
	c.Redirect(http.StatusSeeOther, s.sourcePath(source)+"?submitted=1")
}

// sourcePath maps a submitted source page tag onto the route table. The tag
// is visitor-controlled, so anything that does not resolve to a known page
// falls back to the home page and the redirect never leaves the site.
func (s *Server) sourcePath(source string) string {
	path := "/" + source
	if _, err := s.orch.Router().Resolve(path); err != nil {
		return "/"
	}
	return path
}

func formValues(form leads.Form) map[string]string {
	return map[string]string{
		"customerName":      form.CustomerName,
		"customerEmail":     form.CustomerEmail,
		"customerPhone":     form.CustomerPhone,
		"address":           form.Address,
		"servicesRequested": form.ServicesRequested,
		"budget":            form.Budget,
		"message":           form.Message,
	}
}

func (s *Server) handleInquiryList(c *gin.Context) {
	filter := admin.ListFilter{Source: c.Query("source")}
	if raw := c.Query("status"); raw != "" {
		status := admin.Status(raw)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status", "status": http.StatusBadRequest})
			return
		}
		filter.Status = status
	}

	inquiries, err := s.inquiries.List(c.Request.Context(), filter)
	if err != nil {
		s.log.Error("inquiry list failed", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "inquiries unavailable", "status": http.StatusInternalServerError})
		return
	}
	c.JSON(http.StatusOK, gin.H{"inquiries": inquiries})
}

func (s *Server) handleInquiryGet(c *gin.Context) {
	inquiry, err := s.inquiries.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeInquiryError(c, err)
		return
	}
	c.JSON(http.StatusOK, inquiry)
}

func (s *Server) handleInquiryUpdate(c *gin.Context) {
	var body struct {
		Status admin.Status `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || !body.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be one of new, contacted, scheduled, closed", "status": http.StatusBadRequest})
		return
	}

	id := c.Param("id")
	if err := s.inquiries.UpdateStatus(c.Request.Context(), id, body.Status); err != nil {
		s.writeInquiryError(c, err)
		return
	}
	inquiry, err := s.inquiries.Get(c.Request.Context(), id)
	if err != nil {
		s.writeInquiryError(c, err)
		return
	}
	c.JSON(http.StatusOK, inquiry)
}

func (s *Server) handleInquiryDelete(c *gin.Context) {
	if err := s.inquiries.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.writeInquiryError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) writeInquiryError(c *gin.Context, err error) {
	if admin.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "inquiry not found", "status": http.StatusNotFound})
		return
	}
	s.log.Error("inquiry operation failed", logger.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "inquiry store unavailable", "status": http.StatusInternalServerError})
}
