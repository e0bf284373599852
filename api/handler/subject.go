package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/studytrack/backend/api/transport"
	"github.com/studytrack/backend/domain"
	"github.com/studytrack/backend/pkg/httpcontext"
	subjectUC "github.com/studytrack/backend/usecase/subject"
)

type SubjectHandler struct {
	baseHandler
	uc *subjectUC.UseCase
}

func NewSubjectHandler(uc *subjectUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *SubjectHandler {
	return &SubjectHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List subjects
// @Tags subjects
// @Router /api/v1/subjects [get]
func (h *SubjectHandler) GetSubjects(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	h.respondSuccess(ctx, http.StatusOK, h.uc.ListSubjects(stdCtx))
}

// @Summary Create subject
// @Tags subjects
// @Router /api/v1/subjects [post]
func (h *SubjectHandler) CreateSubject(ctx *fasthttp.RequestCtx) {
	subject, ok := h.parseSubject(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateSubject(stdCtx, subject)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update subject
// @Tags subjects
// @Router /api/v1/subjects/{id} [put]
func (h *SubjectHandler) UpdateSubject(ctx *fasthttp.RequestCtx) {
	subject, ok := h.parseSubject(ctx)
	if !ok {
		return
	}
	subject.ID, _ = ctx.UserValue("id").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateSubject(stdCtx, subject)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete subject
// @Tags subjects
// @Router /api/v1/subjects/{id} [delete]
func (h *SubjectHandler) DeleteSubject(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing subject id", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteSubject(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Subject goal progress
// @Tags subjects
// @Router /api/v1/subjects/{id}/progress [get]
func (h *SubjectHandler) Progress(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing subject id", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	progress, err := h.uc.Progress(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, progress)
}

func (h *SubjectHandler) parseSubject(ctx *fasthttp.RequestCtx) (*domain.Subject, bool) {
	var req transport.SubjectRequest
	if err := h.decodeBody(ctx, &req); err != nil {
		h.respondError(ctx, err)
		return nil, false
	}
	return &domain.Subject{
		Name:             req.Name,
		Description:      req.Description,
		Color:            req.Color,
		GoalHoursPerWeek: req.GoalHoursPerWeek,
	}, true
}
