package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/geocoder89/todohub/internal/config"
	"github.com/geocoder89/todohub/internal/domain/user"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Signup(ctx context.Context, email, password string) (user.User, error)
	Login(ctx context.Context, email, password string) (user.AccessToken, error)
}

type AuthHandler struct {
	svc AuthService
	log *slog.Logger
}

func NewAuthHandler(svc AuthService, log *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

func (h *AuthHandler) SignUp(ctx *gin.Context) {
	var req user.Credentials

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	u, err := h.svc.Signup(cctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrEmailTaken):
			RespondForbidden(ctx, "credentials_taken", "Credentials taken")
		case errors.Is(err, bcrypt.ErrPasswordTooLong):
			RespondBadRequest(ctx, "Invalid request body", gin.H{
				"fields": []FieldError{{Field: "password", Rule: "max", Param: "72", Message: "must be at most 72 bytes"}},
			})
		default:
			respondFault(ctx, h.log, "Could not create user", err)
		}
		return
	}

	ctx.JSON(http.StatusCreated, u)
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req user.Credentials

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	tok, err := h.svc.Login(cctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			RespondForbidden(ctx, "invalid_credentials", "Incorrect credentials")
			return
		}
		respondFault(ctx, h.log, "Could not sign in", err)
		return
	}

	ctx.JSON(http.StatusOK, tok)
}
