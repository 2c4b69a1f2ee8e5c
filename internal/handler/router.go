package handler

import (
	"github.com/gin-gonic/gin"
)

// Handlers groups every HTTP handler registered by RegisterRoutes.
type Handlers struct {
	Taxonomy *TaxonomyHandler
	Intake   *IntakeHandler
	DocGen   *DocGenHandler
	Case     *CaseHandler
	Activity *ActivityHandler
	Note     *NoteHandler
	Metrics  *MetricsHandler
}

// RegisterRoutes mounts the probes and metrics at the root and the API
// under prefix behind auth.
func RegisterRoutes(r *gin.Engine, prefix string, h Handlers, auth gin.HandlerFunc) {
	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	r.GET("/metrics", h.Metrics.Prometheus)
	r.GET("/metrics/summary", h.Metrics.Summary)

	api := r.Group(prefix)
	if auth != nil {
		api.Use(auth)
	}

	taxonomy := api.Group("/taxonomy")
	taxonomy.GET("/categories", h.Taxonomy.ListCategories)
	taxonomy.POST("/categories", h.Taxonomy.CreateCategory)
	taxonomy.GET("/categories/:code", h.Taxonomy.GetCategory)
	taxonomy.DELETE("/categories/:code", h.Taxonomy.DeleteCategory)
	taxonomy.GET("/categories/:code/options", h.Taxonomy.ListOptions)
	taxonomy.DELETE("/categories/:code/options/:option", h.Taxonomy.DeleteOption)
	taxonomy.POST("/options", h.Taxonomy.CreateOption)

	intakes := api.Group("/intakes")
	intakes.POST("", h.Intake.Submit)
	intakes.GET("/:id", h.Intake.Get)
	intakes.GET("/:id/selections", h.Intake.ListSelections)
	intakes.PUT("/:id/issues/:category", h.Intake.SaveIssueMetadata)
	intakes.GET("/:id/docgen", h.DocGen.Preview)

	cases := api.Group("/cases")
	cases.GET("", h.Case.List)
	cases.GET("/:id", h.Case.Get)
	cases.POST("/:id/status", h.Case.ChangeStatus)
	cases.POST("/:id/assign", h.Case.Assign)
	cases.POST("/:id/priority", h.Case.SetPriority)
	cases.POST("/:id/archive", h.Case.Archive)
	cases.POST("/:id/unarchive", h.Case.Unarchive)
	cases.POST("/:id/docgen/load", h.DocGen.Load)
	cases.POST("/:id/docgen/generated", h.DocGen.Generated)
	cases.GET("/:id/activities", h.Activity.ListForCase)
	cases.GET("/:id/activities/export", h.Activity.Export)
	cases.GET("/:id/notes", h.Note.List)
	cases.POST("/:id/notes", h.Note.Create)

	api.GET("/activities", h.Activity.List)

	notes := api.Group("/notes")
	notes.GET("/:id", h.Note.Get)
	notes.PATCH("/:id", h.Note.Edit)
	notes.DELETE("/:id", h.Note.Delete)
	notes.POST("/:id/pin", h.Note.Pin)
	notes.POST("/:id/unpin", h.Note.Unpin)
}
