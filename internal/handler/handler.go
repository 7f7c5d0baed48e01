package handler

import (
	"context"
	"time"

	"psi-agenda-api/internal/auth"
	"psi-agenda-api/internal/insight"
	"psi-agenda-api/internal/schedule"
	"psi-agenda-api/internal/store"
)

// TokenStore persists refresh tokens; satisfied by both the memory and the
// Postgres backend.
type TokenStore interface {
	CreateRefreshToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) (string, error)
	GetRefreshTokenByHash(ctx context.Context, tokenHash string) (*store.RefreshToken, error)
	RotateRefreshToken(ctx context.Context, oldID, newID, userID, newHash string, newExpiry time.Time) error
	RevokeAllRefreshTokens(ctx context.Context, userID string) error
}

// Handler implements rpc.AgendaServer on top of the scheduling service.
type Handler struct {
	svc    *schedule.Service
	tokens TokenStore
	ai     *insight.Client
	prac   auth.Practitioner
	secret string
}

func New(svc *schedule.Service, tokens TokenStore, ai *insight.Client, prac auth.Practitioner, secret string) *Handler {
	return &Handler{svc: svc, tokens: tokens, ai: ai, prac: prac, secret: secret}
}
