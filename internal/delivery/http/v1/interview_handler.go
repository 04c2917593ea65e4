package v1

import (
	"net/http"
	"time"

	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type InterviewHandler struct {
	interviewUC domain.InterviewUsecase
	noteUC      domain.NoteUsecase
}

func NewInterviewHandler(r *gin.RouterGroup, interviewUC domain.InterviewUsecase, noteUC domain.NoteUsecase) {
	handler := &InterviewHandler{interviewUC: interviewUC, noteUC: noteUC}

	employers := r.Group("/employers", middleware.RequireRole(domain.RoleRecruiter))
	{
		employers.POST("/applications/:id/interviews", handler.Schedule)
		employers.GET("/interviews", handler.ListMine)
		employers.POST("/interviews/:id/cancel", handler.Cancel)
		employers.POST("/interviews/:id/complete", handler.Complete)
		employers.POST("/interviews/:id/reschedule", handler.Reschedule)
		employers.POST("/interviews/:id/no-show", handler.MarkNoShow)

		employers.POST("/applications/:id/notes", handler.AddNote)
		employers.GET("/applications/:id/notes", handler.ListNotes)
		employers.PATCH("/notes/:noteId/important", handler.SetImportant)
	}
}

type CancelInterviewRequest struct {
	Reason string `json:"reason" binding:"max=2000"`
}

type CompleteInterviewRequest struct {
	Feedback string `json:"feedback" binding:"max=5000"`
	Rating   *int   `json:"rating"`
}

type RescheduleInterviewRequest struct {
	ScheduledAt     time.Time `json:"scheduled_at" binding:"required"`
	DurationMinutes int       `json:"duration_minutes"`
}

type NoteRequest struct {
	Text        string `json:"text" binding:"required,max=5000"`
	IsImportant bool   `json:"is_important"`
}

type ImportantRequest struct {
	IsImportant bool `json:"is_important"`
}

// Schedule godoc
// @Summary      Schedule an interview
// @Description  At least one hour ahead, 15 to 480 minutes long
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        id       path      int                      true  "Application ID"
// @Param        request  body      domain.InterviewRequest  true  "Interview JSON"
// @Success      201      {object}  response.Response{data=domain.Interview}
// @Failure      409      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /employers/applications/{id}/interviews [post]
// @Security     BearerAuth
func (h *InterviewHandler) Schedule(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req domain.InterviewRequest
	if !bind(c, &req) {
		return
	}

	iv, err := h.interviewUC.Schedule(c.Request.Context(), p, id, req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Interview scheduled", iv)
}

// ListMine godoc
// @Summary      List my interviews
// @Tags         interviews
// @Produce      json
// @Param        status  query     string  false  "Filter by status"
// @Success      200     {object}  response.Response{data=[]domain.Interview}
// @Router       /employers/interviews [get]
// @Security     BearerAuth
func (h *InterviewHandler) ListMine(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var status *domain.InterviewStatus
	if s := c.Query("status"); s != "" {
		st := domain.InterviewStatus(s)
		status = &st
	}

	interviews, err := h.interviewUC.ListMine(c.Request.Context(), p, status)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interviews", interviews)
}

// Cancel godoc
// @Summary      Cancel an interview
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        id       path      int                     true   "Interview ID"
// @Param        request  body      CancelInterviewRequest  false  "Reason"
// @Success      200      {object}  response.Response{data=domain.Interview}
// @Failure      409      {object}  response.Response
// @Router       /employers/interviews/{id}/cancel [post]
// @Security     BearerAuth
func (h *InterviewHandler) Cancel(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req CancelInterviewRequest
	if c.Request.ContentLength > 0 && !bind(c, &req) {
		return
	}

	iv, err := h.interviewUC.Cancel(c.Request.Context(), p, id, req.Reason)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interview cancelled", iv)
}

// Complete godoc
// @Summary      Complete an interview
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        id       path      int                       true  "Interview ID"
// @Param        request  body      CompleteInterviewRequest  true  "Feedback and rating 1-5"
// @Success      200      {object}  response.Response{data=domain.Interview}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /employers/interviews/{id}/complete [post]
// @Security     BearerAuth
func (h *InterviewHandler) Complete(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req CompleteInterviewRequest
	if c.Request.ContentLength > 0 && !bind(c, &req) {
		return
	}

	iv, err := h.interviewUC.Complete(c.Request.Context(), p, id, req.Feedback, req.Rating)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interview completed", iv)
}

// Reschedule godoc
// @Summary      Reschedule an interview
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        id       path      int                         true  "Interview ID"
// @Param        request  body      RescheduleInterviewRequest  true  "New slot"
// @Success      200      {object}  response.Response{data=domain.Interview}
// @Failure      409      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /employers/interviews/{id}/reschedule [post]
// @Security     BearerAuth
func (h *InterviewHandler) Reschedule(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req RescheduleInterviewRequest
	if !bind(c, &req) {
		return
	}

	iv, err := h.interviewUC.Reschedule(c.Request.Context(), p, id, req.ScheduledAt, req.DurationMinutes)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interview rescheduled", iv)
}

// MarkNoShow godoc
// @Summary      Mark a candidate as a no-show
// @Tags         interviews
// @Produce      json
// @Param        id   path      int  true  "Interview ID"
// @Success      200  {object}  response.Response{data=domain.Interview}
// @Failure      409  {object}  response.Response
// @Router       /employers/interviews/{id}/no-show [post]
// @Security     BearerAuth
func (h *InterviewHandler) MarkNoShow(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	iv, err := h.interviewUC.MarkNoShow(c.Request.Context(), p, id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interview marked as no-show", iv)
}

// AddNote godoc
// @Summary      Add a recruiter note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        id       path      int          true  "Application ID"
// @Param        request  body      NoteRequest  true  "Note"
// @Success      201      {object}  response.Response{data=domain.RecruiterNote}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /employers/applications/{id}/notes [post]
// @Security     BearerAuth
func (h *InterviewHandler) AddNote(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req NoteRequest
	if !bind(c, &req) {
		return
	}

	note, err := h.noteUC.AddNote(c.Request.Context(), p, id, req.Text, req.IsImportant)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Note added", note)
}

// ListNotes godoc
// @Summary      List recruiter notes
// @Tags         notes
// @Produce      json
// @Param        id   path      int  true  "Application ID"
// @Success      200  {object}  response.Response{data=[]domain.RecruiterNote}
// @Router       /employers/applications/{id}/notes [get]
// @Security     BearerAuth
func (h *InterviewHandler) ListNotes(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	notes, err := h.noteUC.ListNotes(c.Request.Context(), p, id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Notes", notes)
}

// SetImportant godoc
// @Summary      Flag a note as important
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        noteId   path      int               true  "Note ID"
// @Param        request  body      ImportantRequest  true  "Flag"
// @Success      200      {object}  response.Response
// @Router       /employers/notes/{noteId}/important [patch]
// @Security     BearerAuth
func (h *InterviewHandler) SetImportant(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "noteId")
	if !ok {
		return
	}
	var req ImportantRequest
	if !bind(c, &req) {
		return
	}
	if err := h.noteUC.SetImportant(c.Request.Context(), p, id, req.IsImportant); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Note updated", gin.H{"is_important": req.IsImportant})
}
