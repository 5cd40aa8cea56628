package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-copilot/errors"
	"github.com/johnquangdev/meeting-copilot/internal/adapter/dto/common"
	dto "github.com/johnquangdev/meeting-copilot/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meeting-copilot/internal/usecase/meeting"
)

// Meeting handles meeting HTTP requests
type Meeting struct {
	svc    *meeting.Service
	logger *zap.Logger
}

// NewMeeting creates a new meeting handler
func NewMeeting(svc *meeting.Service, logger *zap.Logger) *Meeting {
	return &Meeting{
		svc:    svc,
		logger: logger,
	}
}

// Create stores a meeting with an inline transcript
// POST /v1/meetings
func (h *Meeting) Create(c echo.Context) error {
	var req dto.CreateMeetingRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	m, err := h.svc.CreateMeeting(c.Request().Context(), req.Title, req.Transcript)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, dto.FromMeeting(m, false))
}

// Get retrieves a meeting by ID
// GET /v1/meetings/:id
func (h *Meeting) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid meeting ID"))
	}

	m, err := h.svc.GetMeeting(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, dto.FromMeeting(m, true))
}

// List returns a page of meetings
// GET /v1/meetings
func (h *Meeting) List(c echo.Context) error {
	var req dto.ListMeetingsRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}

	meetings, total, err := h.svc.ListMeetings(c.Request().Context(), req.PageSize, (req.Page-1)*req.PageSize)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	items := make([]*dto.MeetingResponse, 0, len(meetings))
	for _, m := range meetings {
		items = append(items, dto.FromMeeting(m, false))
	}
	return HandleSuccess(h.logger, c, common.ListResponse{
		Data:       items,
		Pagination: common.NewPagination(req.Page, req.PageSize, total),
	})
}

// Delete removes a meeting
// DELETE /v1/meetings/:id
func (h *Meeting) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid meeting ID"))
	}

	if err := h.svc.DeleteMeeting(c.Request().Context(), id); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{"deleted": id.String()})
}

// Summarize extracts (or returns the cached) summary for a meeting
// POST /v1/meetings/:id/summarize
func (h *Meeting) Summarize(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid meeting ID"))
	}

	var req dto.SummarizeRequest
	if err := c.Bind(&req); err != nil {
		// An empty body means default options
		req = dto.SummarizeRequest{}
	}

	summary, err := h.svc.Summarize(c.Request().Context(), id, req.Force)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, dto.FromSummary(summary))
}

// GetSummary returns the stored summary for a meeting
// GET /v1/meetings/:id/summary
func (h *Meeting) GetSummary(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid meeting ID"))
	}

	summary, err := h.svc.GetSummary(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, dto.FromSummary(summary))
}

// SummarizeText summarizes raw transcript text without persistence
// POST /v1/summarize
func (h *Meeting) SummarizeText(c echo.Context) error {
	var req dto.SummarizeTextRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	summary, err := h.svc.SummarizeText(c.Request().Context(), req.Transcript)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, dto.FromSummary(summary))
}

// Ask answers a question about a stored meeting
// POST /v1/meetings/:id/ask
func (h *Meeting) Ask(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid meeting ID"))
	}

	var req dto.AskRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	answer, err := h.svc.Ask(c.Request().Context(), id, req.Question)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, dto.AnswerResponse{
		MeetingID: id.String(),
		Question:  req.Question,
		Answer:    answer,
	})
}

// AskText answers a question about raw transcript text
// POST /v1/ask
func (h *Meeting) AskText(c echo.Context) error {
	var req dto.AskTextRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	answer, err := h.svc.AskText(c.Request().Context(), req.Transcript, req.Question)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, dto.AnswerResponse{
		Question: req.Question,
		Answer:   answer,
	})
}

// Transcribe submits an audio recording for transcription
// POST /v1/transcribe
func (h *Meeting) Transcribe(c echo.Context) error {
	var req dto.TranscribeRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	m, job, err := h.svc.SubmitTranscription(c.Request().Context(), req.Title, req.AudioURL)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, dto.TranscribeResponse{
		MeetingID: m.ID.String(),
		JobID:     job.ID.String(),
		Status:    string(job.Status),
	})
}
