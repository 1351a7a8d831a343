package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/jihwan-dev/studyroom-reservation/internal/repository"
)

// ActivityHandler serves the data-logging endpoints: report submission,
// the vote ledger and the study timer.  None of them carry real logic;
// they persist the request and echo it back.
type ActivityHandler struct {
	Reports  *repository.ReportRepo
	Votes    *repository.VoteRepo
	Sessions *repository.StudySessionRepo
}

func NewActivityHandler(reports *repository.ReportRepo, votes *repository.VoteRepo, sessions *repository.StudySessionRepo) *ActivityHandler {
	if reports == nil || votes == nil || sessions == nil {
		panic("nil repository passed to NewActivityHandler")
	}
	return &ActivityHandler{Reports: reports, Votes: votes, Sessions: sessions}
}

type reportReq struct {
	Content string `json:"content" form:"content"`
}

// SubmitReport handles POST /reports.
func (h *ActivityHandler) SubmitReport(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req reportReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "content required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Reports.Create(ctx, userID, strings.TrimSpace(req.Content))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save report"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"report_id": id})
}

type voteReq struct {
	Subject string `json:"subject" form:"subject"`
	Value   int32  `json:"value" form:"value"`
}

// SubmitVote handles POST /votes.  Value must be +1 or -1.
func (h *ActivityHandler) SubmitVote(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req voteReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Subject) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "subject required"})
	}
	if req.Value != 1 && req.Value != -1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "value must be 1 or -1"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Votes.Create(ctx, userID, strings.TrimSpace(req.Subject), req.Value)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save vote"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"vote_id": id})
}

// VoteTally handles GET /votes/:subject.
func (h *ActivityHandler) VoteTally(c echo.Context) error {
	subject := strings.TrimSpace(c.Param("subject"))
	if subject == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "subject required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	sum, err := h.Votes.Tally(ctx, subject)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"subject": subject, "tally": sum})
}

type studyTimerReq struct {
	Action string `json:"action" form:"action"`
}

// StudyTimer handles POST /study-timer.  It accepts start, stop and get
// actions.  Start and stop are logged; get is read-only and returns the
// last logged action.  No timing arithmetic happens here, the endpoint
// only records what it received.
func (h *ActivityHandler) StudyTimer(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req studyTimerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	action := strings.ToLower(strings.TrimSpace(req.Action))
	if action != "start" && action != "stop" && action != "get" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "action must be start, stop or get"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	resp := echo.Map{"action": action}
	if action == "get" {
		last, err := h.Sessions.LastByUser(ctx, userID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		if err == nil {
			resp["last_action"] = last.Action
			resp["last_at"] = last.CreatedAt.UTC().Format(time.RFC3339)
		}
		return c.JSON(http.StatusOK, resp)
	}

	if err := h.Sessions.Log(ctx, uuid.NewString(), userID, action); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to log action"})
	}
	return c.JSON(http.StatusOK, resp)
}
