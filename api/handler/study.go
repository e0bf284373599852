package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/studytrack/backend/api/transport"
	"github.com/studytrack/backend/pkg/httpcontext"
	"github.com/studytrack/backend/stats"
	studyUC "github.com/studytrack/backend/usecase/study"
)

type StudyHandler struct {
	baseHandler
	uc *studyUC.UseCase
}

func NewStudyHandler(uc *studyUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *StudyHandler {
	return &StudyHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Recent study sessions
// @Tags sessions
// @Router /api/v1/sessions [get]
func (h *StudyHandler) GetSessions(ctx *fasthttp.RequestCtx) {
	limit := parseInt(string(ctx.QueryArgs().Peek("limit")), 20)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	h.respondSuccess(ctx, http.StatusOK, h.uc.Recent(stdCtx, limit))
}

// @Summary Record a study session
// @Tags sessions
// @Router /api/v1/sessions [post]
func (h *StudyHandler) RecordSession(ctx *fasthttp.RequestCtx) {
	var req transport.SessionRequest
	if err := h.decodeBody(ctx, &req); err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	session, streak, err := h.uc.RecordSession(stdCtx, req.Subject, req.DurationMinutes)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, map[string]interface{}{
		"session": session,
		"streak":  streak,
	})
}

// @Summary Clear the session log
// @Tags sessions
// @Router /api/v1/sessions [delete]
func (h *StudyHandler) ClearSessions(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	removed := h.uc.ClearSessions(stdCtx)
	h.respondSuccess(ctx, http.StatusOK, map[string]int{"removed": removed})
}

// @Summary Current streak
// @Tags sessions
// @Router /api/v1/streak [get]
func (h *StudyHandler) GetStreak(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	h.respondSuccess(ctx, http.StatusOK, h.uc.Streak(stdCtx))
}

// @Summary Dashboard summary
// @Tags stats
// @Router /api/v1/stats/summary [get]
func (h *StudyHandler) Summary(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	h.respondSuccess(ctx, http.StatusOK, h.uc.Summary(stdCtx))
}

// @Summary Per-day study totals
// @Tags stats
// @Router /api/v1/stats/daily [get]
func (h *StudyHandler) Daily(ctx *fasthttp.RequestCtx) {
	days := parseInt(string(ctx.QueryArgs().Peek("days")), 7)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	h.respondSuccess(ctx, http.StatusOK, h.uc.Daily(stdCtx, days))
}

// @Summary Minutes grouped by subject
// @Tags stats
// @Router /api/v1/stats/distribution [get]
func (h *StudyHandler) Distribution(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	h.respondSuccess(ctx, http.StatusOK, h.uc.Distribution(stdCtx))
}

// @Summary Export per-subject statistics as CSV
// @Tags stats
// @Router /api/v1/stats/export [get]
func (h *StudyHandler) Export(ctx *fasthttp.RequestCtx) {
	frame := stats.Timeframe(ctx.QueryArgs().Peek("timeframe"))
	if frame == "" {
		frame = stats.TimeframeAll
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	csvData, err := h.uc.ExportCSV(stdCtx, frame)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	filename := fmt.Sprintf("study-stats-%s.csv", time.Now().Format("2006-01-02"))
	ctx.Response.Header.SetContentType("text/csv")
	ctx.Response.Header.Set("Content-Disposition", "attachment; filename="+filename)
	ctx.SetStatusCode(http.StatusOK)
	ctx.SetBody(csvData)
}

func parseInt(value string, fallback int) int {
	if v, err := strconv.Atoi(value); err == nil && v > 0 {
		return v
	}
	return fallback
}
