package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/boardroom-simulator/errors"
	sessiondto "github.com/johnquangdev/boardroom-simulator/internal/adapter/dto/session"
	"github.com/johnquangdev/boardroom-simulator/internal/adapter/presenter"
	"github.com/johnquangdev/boardroom-simulator/internal/domain/entities"
	"github.com/johnquangdev/boardroom-simulator/internal/usecase/session"
)

// Session handles the session and topic lifecycle endpoints
type Session struct {
	svc    *session.Service
	logger *zap.Logger
}

// NewSession creates the session handler
func NewSession(svc *session.Service, logger *zap.Logger) *Session {
	return &Session{svc: svc, logger: logger}
}

// Create godoc
// @Summary Create a discussion session
// @Description Runs the setup payload through the session wizard and registers every topic
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body session.CreateSessionRequest true "Session setup"
// @Success 200 {object} session.SessionResponse
// @Router /v1/sessions [post]
func (h *Session) Create(c echo.Context) error {
	var req sessiondto.CreateSessionRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	w := session.NewWizard()
	w.SetDetails(req.Title, req.HumanName)
	for _, t := range req.Topics {
		w.AddTopic(session.TopicDraft{
			Title:           t.Title,
			DurationMinutes: t.DurationMinutes,
			Priority:        entities.TopicPriority(t.Priority),
		})
	}
	for _, p := range req.Participants {
		w.AddParticipant(session.ParticipantDraft{
			Name: p.Name,
			Role: entities.ParticipantRole(p.Role),
		})
	}

	created, err := h.svc.CreateSession(w)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToSessionResponse(created))
}

// Get godoc
// @Summary Get a session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} session.SessionResponse
// @Router /v1/sessions/{id} [get]
func (h *Session) Get(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	s, err := h.svc.GetSession(id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToSessionResponse(s))
}

// Start godoc
// @Summary Start a session
// @Description Activates the session and opens its highest-priority topic
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} session.SessionResponse
// @Router /v1/sessions/{id}/start [post]
func (h *Session) Start(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.svc.StartSession(id); err != nil {
		return HandleError(h.logger, c, err)
	}
	s, err := h.svc.GetSession(id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToSessionResponse(s))
}

// End godoc
// @Summary End a session
// @Description Ends the session, exports the transcript and archives the record
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} session.SessionResponse
// @Router /v1/sessions/{id}/end [post]
func (h *Session) End(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	s, err := h.svc.EndSession(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToSessionResponse(s))
}

// AddMessage godoc
// @Summary Add a human message
// @Description Records one human utterance on the session's active topic
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body session.AddMessageRequest true "Message"
// @Success 200 {object} session.MessageResponse
// @Router /v1/sessions/{id}/messages [post]
func (h *Session) AddMessage(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req sessiondto.AddMessageRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	msg, err := h.svc.AddUserMessage(id, req.Text)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMessageResponse(msg))
}

// Advance godoc
// @Summary Take one simulated turn
// @Description A simulated participant speaks on the session's active topic
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} session.MessageResponse
// @Router /v1/sessions/{id}/advance [post]
func (h *Session) Advance(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	msg, err := h.svc.AdvanceConversation(id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMessageResponse(msg))
}

// Progress godoc
// @Summary Get the session progress report
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} session.ProgressResponse
// @Router /v1/sessions/{id}/progress [get]
func (h *Session) Progress(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	report, err := h.svc.GetProgress(id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToProgressResponse(report))
}

// Topics godoc
// @Summary List every topic's progress state
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {array} session.TopicStateResponse
// @Router /v1/sessions/{id}/topics [get]
func (h *Session) Topics(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	states, err := h.svc.GetAllTopicStates(id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToTopicStateResponses(states))
}

// TopicState godoc
// @Summary Get one topic's progress state
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Param topicId path string true "Topic ID"
// @Success 200 {object} session.TopicStateResponse
// @Router /v1/sessions/{id}/topics/{topicId} [get]
func (h *Session) TopicState(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	topicID, err := parseUUIDParam(c, "topicId")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	state, err := h.svc.GetTopicState(id, topicID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToTopicStateResponse(state))
}

// TopicMessages godoc
// @Summary Get one topic's message log
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Param topicId path string true "Topic ID"
// @Success 200 {array} session.MessageResponse
// @Router /v1/sessions/{id}/topics/{topicId}/messages [get]
func (h *Session) TopicMessages(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	topicID, err := parseUUIDParam(c, "topicId")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	messages, err := h.svc.GetTopicMessages(id, topicID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMessageResponses(messages))
}

// ResetTopic godoc
// @Summary Reset one topic
// @Description Returns the topic to pending with zeroed metrics and a cleared log
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Param topicId path string true "Topic ID"
// @Success 200 {object} session.TopicStateResponse
// @Router /v1/sessions/{id}/topics/{topicId}/reset [post]
func (h *Session) ResetTopic(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	topicID, err := parseUUIDParam(c, "topicId")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.svc.ResetTopic(id, topicID); err != nil {
		return HandleError(h.logger, c, err)
	}
	state, err := h.svc.GetTopicState(id, topicID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToTopicStateResponse(state))
}

// ReopenTopic godoc
// @Summary Reopen a pending topic
// @Description Starts the topic and makes it the session's active one
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Param topicId path string true "Topic ID"
// @Success 200 {object} session.TopicStateResponse
// @Router /v1/sessions/{id}/topics/{topicId}/reopen [post]
func (h *Session) ReopenTopic(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	topicID, err := parseUUIDParam(c, "topicId")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.svc.ReopenTopic(id, topicID); err != nil {
		return HandleError(h.logger, c, err)
	}
	state, err := h.svc.GetTopicState(id, topicID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToTopicStateResponse(state))
}
