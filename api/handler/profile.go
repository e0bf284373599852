package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/studytrack/backend/api/transport"
	"github.com/studytrack/backend/domain"
	"github.com/studytrack/backend/pkg/httpcontext"
	profileUC "github.com/studytrack/backend/usecase/profile"
)

type ProfileHandler struct {
	baseHandler
	uc *profileUC.UseCase
}

func NewProfileHandler(uc *profileUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Get the student profile
// @Tags profile
// @Router /api/v1/profile [get]
func (h *ProfileHandler) GetProfile(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	h.respondSuccess(ctx, http.StatusOK, h.uc.GetProfile(stdCtx))
}

// @Summary Update the student profile
// @Tags profile
// @Router /api/v1/profile [put]
func (h *ProfileHandler) UpdateProfile(ctx *fasthttp.RequestCtx) {
	var req transport.ProfileRequest
	if err := h.decodeBody(ctx, &req); err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateProfile(stdCtx, domain.StudentProfile{
		Name:  req.Name,
		Email: req.Email,
		StudyPreferences: domain.StudyPreferences{
			PreferredStudyTime:   domain.StudyTime(req.Preferences.PreferredStudyTime),
			FocusSessionDuration: req.Preferences.FocusSessionDuration,
			BreakDuration:        req.Preferences.BreakDuration,
			DailyGoalHours:       req.Preferences.DailyGoalHours,
			Notifications:        req.Preferences.Notifications,
			SoundEffects:         req.Preferences.SoundEffects,
		},
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Record an achievement
// @Tags profile
// @Router /api/v1/profile/achievements [post]
func (h *ProfileHandler) AddAchievement(ctx *fasthttp.RequestCtx) {
	var req transport.AchievementRequest
	if err := h.decodeBody(ctx, &req); err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	profile, err := h.uc.AddAchievement(stdCtx, req.Title, req.Description)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, profile)
}
