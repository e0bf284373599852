package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/studytrack/backend/api/transport"
	"github.com/studytrack/backend/pkg/httpcontext"
	assistantUC "github.com/studytrack/backend/usecase/assistant"
)

type AssistantHandler struct {
	baseHandler
	uc *assistantUC.UseCase
}

func NewAssistantHandler(uc *assistantUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *AssistantHandler {
	return &AssistantHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Chat with the study assistant
// @Tags assistant
// @Router /api/v1/assistant/chat [post]
func (h *AssistantHandler) Chat(ctx *fasthttp.RequestCtx) {
	var req transport.ChatRequest
	if err := h.decodeBody(ctx, &req); err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	reply, err := h.uc.Chat(stdCtx, req.Message)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]string{"reply": reply})
}

// @Summary Summarize an uploaded document
// @Tags assistant
// @Router /api/v1/assistant/document [post]
func (h *AssistantHandler) SummarizeDocument(ctx *fasthttp.RequestCtx) {
	contentType := string(ctx.Request.Header.ContentType())
	body := ctx.PostBody()

	if err := assistantUC.ValidateDocument(len(body), contentType); err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	summary, err := h.uc.SummarizeDocument(stdCtx, body, contentType)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]string{"summary": summary})
}
