package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/geocoder89/todohub/internal/actorctx"
	"github.com/geocoder89/todohub/internal/config"
	"github.com/geocoder89/todohub/internal/domain/user"
	"github.com/gin-gonic/gin"
)

type UserService interface {
	Me(ctx context.Context, callerID int64) (user.User, error)
	Edit(ctx context.Context, callerID int64, patch user.Patch) (user.User, error)
}

type UsersHandler struct {
	svc UserService
	log *slog.Logger
}

func NewUsersHandler(svc UserService, log *slog.Logger) *UsersHandler {
	return &UsersHandler{svc: svc, log: log}
}

func (h *UsersHandler) Me(ctx *gin.Context) {
	caller, ok := callerOrAbort(ctx)
	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	u, err := h.svc.Me(cctx, caller.ID)
	if err != nil {
		// a valid token for a user that no longer exists
		if errors.Is(err, user.ErrNotFound) {
			RespondUnAuthorized(ctx, "unauthorized", "Unknown user")
			return
		}
		respondFault(ctx, h.log, "Could not load user", err)
		return
	}

	ctx.JSON(http.StatusOK, u)
}

func (h *UsersHandler) Edit(ctx *gin.Context) {
	caller, ok := callerOrAbort(ctx)
	if !ok {
		return
	}

	var req user.Patch
	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	u, err := h.svc.Edit(cctx, caller.ID, req)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondUnAuthorized(ctx, "unauthorized", "Unknown user")
			return
		}
		respondFault(ctx, h.log, "Could not update user", err)
		return
	}

	ctx.JSON(http.StatusOK, u)
}

// callerOrAbort answers 401 when the auth middleware did not run or did not
// resolve a caller.
func callerOrAbort(ctx *gin.Context) (actorctx.Caller, bool) {
	caller, ok := actorctx.CallerFrom(ctx.Request.Context())
	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity context")
		ctx.Abort()
		return actorctx.Caller{}, false
	}
	return caller, true
}
