package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"psi-agenda-api/internal/insight"
	"psi-agenda-api/internal/rpc"
)

// The AI collaborator never fails a request: degraded output is still a
// valid response.

func (h *Handler) RefineNotes(ctx context.Context, req *rpc.RefineNotesRequest) (*rpc.TextResponse, error) {
	if req.Notes == "" {
		return nil, status.Error(codes.InvalidArgument, "notes required")
	}
	return &rpc.TextResponse{Text: h.ai.RefineNotes(ctx, req.Notes, req.PatientName)}, nil
}

func (h *Handler) DailyInsight(ctx context.Context, req *rpc.DailyInsightRequest) (*rpc.TextResponse, error) {
	return &rpc.TextResponse{Text: h.ai.DailyInsight(ctx)}, nil
}

func (h *Handler) GenerateReport(ctx context.Context, req *rpc.GenerateReportRequest) (*rpc.TextResponse, error) {
	if req.PatientId == "" {
		return nil, status.Error(codes.InvalidArgument, "patient id required")
	}

	var kind insight.ReportKind
	switch insight.ReportKind(req.Kind) {
	case insight.ReportSupervision:
		kind = insight.ReportSupervision
	case insight.ReportTechnical, "":
		kind = insight.ReportTechnical
	default:
		return nil, status.Error(codes.InvalidArgument, "unknown report kind")
	}

	patients, err := h.svc.Patients(ctx)
	if err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}
	name := ""
	for _, p := range patients {
		if p.ID == req.PatientId {
			name = p.Name
			break
		}
	}
	if name == "" {
		return nil, status.Error(codes.NotFound, "patient not found")
	}

	appts, err := h.svc.Appointments(ctx)
	if err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}
	var sessions []insight.Session
	for _, a := range appts {
		if a.PatientID != req.PatientId || a.Notes == "" {
			continue
		}
		sessions = append(sessions, insight.Session{
			Date:  a.Date.Format(dateLayout),
			Notes: a.Notes,
		})
	}
	if len(sessions) == 0 {
		return nil, status.Error(codes.FailedPrecondition, "patient has no session notes")
	}

	return &rpc.TextResponse{Text: h.ai.Report(ctx, kind, name, sessions)}, nil
}
