package v1

import (
	"net/http"
	"strconv"
	"time"

	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(public *gin.RouterGroup, protected *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	// PUBLIC routes - only active jobs are listed
	publicJobs := public.Group("/jobs")
	{
		publicJobs.GET("", handler.List)
		publicJobs.GET("/:jobId", handler.GetDetails)
	}

	employers := protected.Group("/employers", middleware.RequireRole(domain.RoleRecruiter))
	{
		employers.POST("/jobs", handler.Create)
		employers.PUT("/jobs/:jobId", handler.Update)
		employers.DELETE("/jobs/:jobId", handler.Delete)
	}
}

type JobRequest struct {
	Title           string     `json:"title" binding:"required,min=3,max=100"`
	Description     string     `json:"description" binding:"required"`
	Location        string     `json:"location" binding:"required,max=200"`
	Salary          *float64   `json:"salary" binding:"omitempty,gte=0"`
	RequiredSkills  []string   `json:"required_skills" binding:"dive,required,max=100"`
	ExperienceLevel string     `json:"experience_level" binding:"required,oneof=entry mid senior director"`
	IsActive        *bool      `json:"is_active"`
	ClosingDate     *time.Time `json:"closing_date"`
}

func (r JobRequest) toDomain() *domain.Job {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return &domain.Job{
		Title:           r.Title,
		Description:     r.Description,
		Location:        r.Location,
		Salary:          r.Salary,
		RequiredSkills:  r.RequiredSkills,
		ExperienceLevel: domain.ExperienceLevel(r.ExperienceLevel),
		IsActive:        active,
		ClosingDate:     r.ClosingDate,
	}
}

// CreateJob godoc
// @Summary      Create a new job
// @Description  Create a job posting for the recruiter's company
// @Tags         employers
// @Accept       json
// @Produce      json
// @Param        job  body      JobRequest  true  "Job JSON"
// @Success      201  {object}  response.Response{data=domain.Job}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /employers/jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req JobRequest
	if !bind(c, &req) {
		return
	}

	job := req.toDomain()
	if err := h.jobUC.CreateJob(c.Request.Context(), p, job); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Job created", job)
}

// UpdateJob godoc
// @Summary      Update a job
// @Tags         employers
// @Accept       json
// @Produce      json
// @Param        jobId  path      int         true  "Job ID"
// @Param        job    body      JobRequest  true  "Job JSON"
// @Success      200    {object}  response.Response{data=domain.Job}
// @Failure      400    {object}  response.Response
// @Failure      403    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /employers/jobs/{jobId} [put]
// @Security     BearerAuth
func (h *JobHandler) Update(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "jobId")
	if !ok {
		return
	}
	var req JobRequest
	if !bind(c, &req) {
		return
	}

	job := req.toDomain()
	job.ID = id
	if err := h.jobUC.UpdateJob(c.Request.Context(), p, job); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job updated", job)
}

// DeleteJob godoc
// @Summary      Delete a job
// @Description  Jobs that already have applications are deactivated instead
// @Tags         employers
// @Produce      json
// @Param        jobId  path      int  true  "Job ID"
// @Success      200    {object}  response.Response
// @Failure      403    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /employers/jobs/{jobId} [delete]
// @Security     BearerAuth
func (h *JobHandler) Delete(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "jobId")
	if !ok {
		return
	}

	deactivated, err := h.jobUC.DeleteJob(c.Request.Context(), p, id)
	if err != nil {
		c.Error(err)
		return
	}
	message := "Job deleted"
	if deactivated {
		message = "Job has applications and was deactivated"
	}
	response.Success(c, http.StatusOK, message, gin.H{"deactivated": deactivated})
}

// ListJobs godoc
// @Summary      List active jobs
// @Description  Active jobs, newest first (no auth required)
// @Tags         jobs
// @Produce      json
// @Param        page       query     int  false  "Page number"
// @Param        page_size  query     int  false  "Page size"
// @Success      200        {object}  response.Response
// @Router       /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	result, err := h.jobUC.ListActiveJobs(c.Request.Context(), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job list", result)
}

// GetJobDetails godoc
// @Summary      Get job details
// @Tags         jobs
// @Produce      json
// @Param        jobId  path      int  true  "Job ID"
// @Success      200    {object}  response.Response{data=domain.Job}
// @Failure      400    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /jobs/{jobId} [get]
func (h *JobHandler) GetDetails(c *gin.Context) {
	id, ok := pathID(c, "jobId")
	if !ok {
		return
	}
	job, err := h.jobUC.GetJob(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	// inactive jobs stay hidden on the public endpoint
	if !job.IsActive {
		c.Error(apperror.NotFound("Job not found"))
		return
	}
	response.Success(c, http.StatusOK, "Job details", job)
}
