package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/studytrack/backend/api/transport"
	"github.com/studytrack/backend/internal/pomodoro"
	"github.com/studytrack/backend/pkg/httpcontext"
)

type TimerHandler struct {
	baseHandler
	engine *pomodoro.Engine
}

func NewTimerHandler(engine *pomodoro.Engine, adapter *httpcontext.Adapter, logger *zap.Logger) *TimerHandler {
	return &TimerHandler{
		baseHandler: newBaseHandler(adapter, logger),
		engine:      engine,
	}
}

// @Summary Timer status
// @Tags timer
// @Router /api/v1/timer [get]
func (h *TimerHandler) Status(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, h.engine.Status())
}

// @Summary Start a focus phase
// @Tags timer
// @Router /api/v1/timer/start [post]
func (h *TimerHandler) Start(ctx *fasthttp.RequestCtx) {
	var req transport.TimerRequest
	if err := h.decodeBody(ctx, &req); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, h.engine.StartTimer(req.Subject))
}

// @Summary Pause the timer
// @Tags timer
// @Router /api/v1/timer/pause [post]
func (h *TimerHandler) Pause(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, h.engine.Pause())
}

// @Summary Resume the timer
// @Tags timer
// @Router /api/v1/timer/resume [post]
func (h *TimerHandler) Resume(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, h.engine.Resume())
}

// @Summary Stop the timer
// @Tags timer
// @Router /api/v1/timer/stop [post]
func (h *TimerHandler) Stop(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, h.engine.StopTimer())
}
