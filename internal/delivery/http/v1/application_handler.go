package v1

import (
	"net/http"
	"strings"

	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

func NewApplicationHandler(r *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	// Candidate routes
	candidates := r.Group("/candidates", middleware.RequireRole(domain.RoleCandidate))
	{
		candidates.POST("/jobs/:jobId/apply", middleware.RateLimit(middleware.ApplyRateLimitConfig(0)), handler.Apply)
		candidates.GET("/applications", handler.ListMine)
		candidates.GET("/applications/stats", handler.MyStats)
		candidates.POST("/applications/:id/withdraw", handler.Withdraw)
	}

	// Recruiter routes
	employers := r.Group("/employers", middleware.RequireRole(domain.RoleRecruiter))
	{
		employers.GET("/jobs/:jobId/applications", handler.Ranked)
		employers.GET("/jobs/:jobId/applications/export", handler.Export)
		employers.GET("/jobs/:jobId/stats", handler.JobStats)
		employers.PATCH("/applications/:id/status", handler.ChangeStatus)
	}
}

type ApplyRequest struct {
	CoverLetter string `json:"cover_letter" binding:"max=5000"`
}

// Apply godoc
// @Summary      Apply to a job
// @Description  Requires a complete profile and an open job
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        jobId    path      int           true   "Job ID"
// @Param        request  body      ApplyRequest  false  "Cover letter"
// @Success      201      {object}  response.Response{data=domain.Application}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /candidates/jobs/{jobId}/apply [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Apply(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	jobID, ok := pathID(c, "jobId")
	if !ok {
		return
	}
	var req ApplyRequest
	if c.Request.ContentLength > 0 && !bind(c, &req) {
		return
	}

	app, err := h.applicationUC.Apply(c.Request.Context(), p, jobID, strings.TrimSpace(req.CoverLetter))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Application submitted", app)
}

// ListMine godoc
// @Summary      List my applications
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Application}
// @Router       /candidates/applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	apps, err := h.applicationUC.GetMyApplications(c.Request.Context(), p)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications", apps)
}

// MyStats godoc
// @Summary      Application counters for the candidate dashboard
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.ApplicationStats}
// @Router       /candidates/applications/stats [get]
// @Security     BearerAuth
func (h *ApplicationHandler) MyStats(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	stats, err := h.applicationUC.GetMyStats(c.Request.Context(), p)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application stats", stats)
}

// Withdraw godoc
// @Summary      Withdraw an application
// @Tags         applications
// @Produce      json
// @Param        id   path      int  true  "Application ID"
// @Success      200  {object}  response.Response{data=domain.Application}
// @Failure      403  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /candidates/applications/{id}/withdraw [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	app, err := h.applicationUC.Withdraw(c.Request.Context(), p, id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application withdrawn", app)
}

// Ranked godoc
// @Summary      Ranked applicants for a job
// @Description  Live applications ordered by match score
// @Tags         employers
// @Produce      json
// @Param        jobId  path      int  true  "Job ID"
// @Success      200    {object}  response.Response{data=[]domain.RankedApplicant}
// @Failure      403    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /employers/jobs/{jobId}/applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) Ranked(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	jobID, ok := pathID(c, "jobId")
	if !ok {
		return
	}
	ranked, err := h.applicationUC.RankApplicants(c.Request.Context(), p, jobID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Ranked applicants", ranked)
}

var exportContentTypes = map[string]string{
	"csv":  "text/csv",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// Export godoc
// @Summary      Export the applicant pipeline
// @Tags         employers
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      text/csv
// @Param        jobId   path   int     true   "Job ID"
// @Param        format  query  string  false  "xlsx (default) or csv"
// @Success      200
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /employers/jobs/{jobId}/applications/export [get]
// @Security     BearerAuth
func (h *ApplicationHandler) Export(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	jobID, ok := pathID(c, "jobId")
	if !ok {
		return
	}
	format := strings.ToLower(c.Query("format"))
	if format == "" {
		format = "xlsx"
	}

	data, filename, err := h.applicationUC.ExportPipeline(c.Request.Context(), p, jobID, format)
	if err != nil {
		c.Error(err)
		return
	}
	response.Attachment(c, filename, exportContentTypes[format], data)
}

// JobStats godoc
// @Summary      Application counters for a job
// @Tags         employers
// @Produce      json
// @Param        jobId  path      int  true  "Job ID"
// @Success      200    {object}  response.Response{data=domain.ApplicationStats}
// @Failure      403    {object}  response.Response
// @Router       /employers/jobs/{jobId}/stats [get]
// @Security     BearerAuth
func (h *ApplicationHandler) JobStats(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	jobID, ok := pathID(c, "jobId")
	if !ok {
		return
	}
	stats, err := h.applicationUC.GetJobStats(c.Request.Context(), p, jobID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job application stats", stats)
}

// ChangeStatus godoc
// @Summary      Change application status
// @Description  Forward-only moves, rejection from any open state. Admins may override.
// @Tags         employers
// @Accept       json
// @Produce      json
// @Param        id       path      int                         true  "Application ID"
// @Param        request  body      domain.StatusChangeRequest  true  "New status"
// @Success      200      {object}  response.Response{data=domain.Application}
// @Failure      403      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /employers/applications/{id}/status [patch]
// @Security     BearerAuth
func (h *ApplicationHandler) ChangeStatus(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req domain.StatusChangeRequest
	if !bind(c, &req) {
		return
	}

	app, err := h.applicationUC.ChangeStatus(c.Request.Context(), p, id, req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application status updated", app)
}
