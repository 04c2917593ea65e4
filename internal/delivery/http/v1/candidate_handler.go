package v1

import (
	"net/http"

	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type CandidateHandler struct {
	candidateUC domain.CandidateUsecase
}

func NewCandidateHandler(r *gin.RouterGroup, candidateUC domain.CandidateUsecase) {
	handler := &CandidateHandler{candidateUC: candidateUC}

	candidates := r.Group("/candidates", middleware.RequireRole(domain.RoleCandidate))
	{
		candidates.POST("/me/profile", handler.CreateProfile)
		candidates.GET("/me/profile", handler.GetProfile)
		candidates.PUT("/me/profile", handler.UpdateProfile)
		candidates.DELETE("/me/profile", handler.DeactivateProfile)
		candidates.GET("/me/completeness", handler.Completeness)
		candidates.GET("/me/recommendations", handler.Recommendations)
		candidates.GET("/jobs/:jobId/match", handler.MatchJob)
	}
}

// CreateProfile godoc
// @Summary      Create candidate profile
// @Description  Create the profile of the logged-in candidate. The candidate must be at least 16.
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        profile  body      domain.CandidateProfile  true  "Profile JSON"
// @Success      201      {object}  response.Response{data=domain.ProfileSummary}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /candidates/me/profile [post]
// @Security     BearerAuth
func (h *CandidateHandler) CreateProfile(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var profile domain.CandidateProfile
	if !bind(c, &profile) {
		return
	}

	summary, err := h.candidateUC.CreateProfile(c.Request.Context(), p, &profile)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Candidate profile created", summary)
}

// GetProfile godoc
// @Summary      Get candidate profile
// @Description  Get the profile of the currently logged-in candidate with its completeness
// @Tags         candidates
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.ProfileSummary}
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/me/profile [get]
// @Security     BearerAuth
func (h *CandidateHandler) GetProfile(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	summary, err := h.candidateUC.GetProfile(c.Request.Context(), p)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidate profile", summary)
}

// UpdateProfile godoc
// @Summary      Update candidate profile
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        profile  body      domain.CandidateProfile  true  "Profile JSON"
// @Success      200      {object}  response.Response{data=domain.ProfileSummary}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /candidates/me/profile [put]
// @Security     BearerAuth
func (h *CandidateHandler) UpdateProfile(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var profile domain.CandidateProfile
	if !bind(c, &profile) {
		return
	}

	summary, err := h.candidateUC.UpdateProfile(c.Request.Context(), p, &profile)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidate profile updated", summary)
}

// DeactivateProfile godoc
// @Summary      Deactivate candidate profile
// @Description  Profiles are never deleted, only deactivated
// @Tags         candidates
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/me/profile [delete]
// @Security     BearerAuth
func (h *CandidateHandler) DeactivateProfile(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	if err := h.candidateUC.DeactivateProfile(c.Request.Context(), p); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidate profile deactivated", nil)
}

// Completeness godoc
// @Summary      Profile completeness
// @Tags         candidates
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/me/completeness [get]
// @Security     BearerAuth
func (h *CandidateHandler) Completeness(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	summary, err := h.candidateUC.GetProfile(c.Request.Context(), p)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile completeness", gin.H{
		"completeness": summary.Completeness,
		"is_complete":  summary.IsComplete,
	})
}

// Recommendations godoc
// @Summary      Recommended jobs
// @Description  Recent open jobs scoring above the match threshold, best first
// @Tags         candidates
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.JobMatchResult}
// @Failure      404  {object}  response.Response
// @Router       /candidates/me/recommendations [get]
// @Security     BearerAuth
func (h *CandidateHandler) Recommendations(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	results, err := h.candidateUC.RecommendJobs(c.Request.Context(), p)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Recommended jobs", results)
}

// MatchJob godoc
// @Summary      Match score for one job
// @Tags         candidates
// @Produce      json
// @Param        jobId  path      int  true  "Job ID"
// @Success      200    {object}  response.Response{data=domain.JobMatchResult}
// @Failure      404    {object}  response.Response
// @Router       /candidates/jobs/{jobId}/match [get]
// @Security     BearerAuth
func (h *CandidateHandler) MatchJob(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	jobID, ok := pathID(c, "jobId")
	if !ok {
		return
	}
	result, err := h.candidateUC.MatchJob(c.Request.Context(), p, jobID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job match", result)
}
