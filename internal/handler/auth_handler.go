package handler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"psi-agenda-api/internal/auth"
	"psi-agenda-api/internal/rpc"
)

const refreshTokenTTL = 7 * 24 * time.Hour

func (h *Handler) Login(ctx context.Context, req *rpc.LoginRequest) (*rpc.LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, status.Error(codes.InvalidArgument, "email and password required")
	}

	if !h.prac.Authenticate(req.Email, req.Password) {
		return nil, status.Error(codes.Unauthenticated, "invalid credentials")
	}

	tok, err := auth.MakeToken(h.prac.ID, h.secret)
	if err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}

	rawRefresh, refreshHash, err := auth.GenerateRefreshToken()
	if err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}
	if _, err := h.tokens.CreateRefreshToken(ctx, h.prac.ID, refreshHash, time.Now().Add(refreshTokenTTL)); err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &rpc.LoginResponse{Token: tok, Name: h.prac.Name, RefreshToken: rawRefresh}, nil
}

func (h *Handler) Refresh(ctx context.Context, req *rpc.RefreshRequest) (*rpc.RefreshResponse, error) {
	if req.RefreshToken == "" {
		return nil, status.Error(codes.InvalidArgument, "refresh token required")
	}

	rt, err := h.tokens.GetRefreshTokenByHash(ctx, auth.HashRefreshToken(req.RefreshToken))
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, "invalid refresh token")
	}
	if rt.Revoked {
		// reuse of a rotated token = possible theft; kill the session
		_ = h.tokens.RevokeAllRefreshTokens(ctx, rt.UserID)
		return nil, status.Error(codes.Unauthenticated, "invalid refresh token")
	}
	if time.Now().After(rt.ExpiresAt) {
		return nil, status.Error(codes.Unauthenticated, "refresh token expired")
	}

	rawNew, newHash, err := auth.GenerateRefreshToken()
	if err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}
	if err := h.tokens.RotateRefreshToken(ctx, rt.ID, uuid.New().String(), rt.UserID, newHash, time.Now().Add(refreshTokenTTL)); err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}

	tok, err := auth.MakeToken(rt.UserID, h.secret)
	if err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}
	return &rpc.RefreshResponse{Token: tok, RefreshToken: rawNew}, nil
}
