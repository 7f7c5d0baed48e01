package grpcweb

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"psi-agenda-api/internal/auth"
	"psi-agenda-api/internal/middleware"
	"psi-agenda-api/internal/rpc"
)

// Bridge serves gRPC-Web (browser HTTP/1.1) directly against the handler,
// decoding request frames with the shared wire codecs. No network hop to
// the native gRPC listener is needed.
type Bridge struct {
	srv    rpc.AgendaServer
	secret string
}

func New(srv rpc.AgendaServer, secret string) *Bridge {
	return &Bridge{srv: srv, secret: secret}
}

// open methods skip the bearer-token check, mirroring the interceptor.
var open = map[string]bool{
	rpc.MethodLogin:   true,
	rpc.MethodRefresh: true,
}

// Handler returns an http.Handler that translates gRPC-Web frames.
func (b *Bridge) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers",
			"Content-Type, X-Grpc-Web, X-User-Agent, Authorization, x-grpc-web")
		w.Header().Set("Access-Control-Expose-Headers",
			"Grpc-Status, Grpc-Message, Grpc-Status-Details-Bin, grpc-status, grpc-message")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		ct := r.Header.Get("Content-Type")
		if !strings.HasPrefix(ct, "application/grpc-web") {
			http.Error(w, "not grpc-web", http.StatusUnsupportedMediaType)
			return
		}

		log.Printf("grpc-web → %s", r.URL.Path)
		b.dispatch(w, r)
	})
}

func (b *Bridge) dispatch(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, codes.Internal, "read body failed")
		return
	}
	if len(body) < 5 {
		writeError(w, codes.InvalidArgument, "body too short")
		return
	}

	// grpc-web frame: 1-byte flag + 4-byte big-endian length + protobuf
	msgLen := binary.BigEndian.Uint32(body[1:5])
	if int(msgLen)+5 > len(body) {
		writeError(w, codes.InvalidArgument, "incomplete frame")
		return
	}
	payload := body[5 : 5+msgLen]

	ctx := r.Context()
	if !open[r.URL.Path] {
		ctx, err = b.authenticate(ctx, r.Header.Get("Authorization"))
		if err != nil {
			st, _ := status.FromError(err)
			writeError(w, st.Code(), st.Message())
			return
		}
	}

	resp, err := b.call(ctx, r.URL.Path, payload)
	if err != nil {
		st, _ := status.FromError(err)
		log.Printf("grpc-web error: %s: %s", st.Code(), st.Message())
		writeError(w, st.Code(), st.Message())
		return
	}

	out, err := resp.MarshalWire()
	if err != nil {
		writeError(w, codes.Internal, "encode failed")
		return
	}
	writeSuccess(w, out)
}

// call decodes the payload into the method's request type and invokes the
// handler.
func (b *Bridge) call(ctx context.Context, path string, payload []byte) (rpc.Message, error) {
	switch path {
	case rpc.MethodLogin:
		return invoke(ctx, payload, &rpc.LoginRequest{}, b.srv.Login)
	case rpc.MethodRefresh:
		return invoke(ctx, payload, &rpc.RefreshRequest{}, b.srv.Refresh)
	case rpc.MethodSaveAppointment:
		return invoke(ctx, payload, &rpc.SaveAppointmentRequest{}, b.srv.SaveAppointment)
	case rpc.MethodDeleteAppointment:
		return invoke(ctx, payload, &rpc.DeleteAppointmentRequest{}, b.srv.DeleteAppointment)
	case rpc.MethodListAppointments:
		return invoke(ctx, payload, &rpc.ListAppointmentsRequest{}, b.srv.ListAppointments)
	case rpc.MethodSlotAppointments:
		return invoke(ctx, payload, &rpc.SlotAppointmentsRequest{}, b.srv.SlotAppointments)
	case rpc.MethodSavePatient:
		return invoke(ctx, payload, &rpc.SavePatientRequest{}, b.srv.SavePatient)
	case rpc.MethodDeletePatient:
		return invoke(ctx, payload, &rpc.DeletePatientRequest{}, b.srv.DeletePatient)
	case rpc.MethodListPatients:
		return invoke(ctx, payload, &rpc.ListPatientsRequest{}, b.srv.ListPatients)
	case rpc.MethodRefineNotes:
		return invoke(ctx, payload, &rpc.RefineNotesRequest{}, b.srv.RefineNotes)
	case rpc.MethodDailyInsight:
		return invoke(ctx, payload, &rpc.DailyInsightRequest{}, b.srv.DailyInsight)
	case rpc.MethodGenerateReport:
		return invoke(ctx, payload, &rpc.GenerateReportRequest{}, b.srv.GenerateReport)
	}
	return nil, status.Error(codes.Unimplemented, "unknown method")
}

func invoke[Req rpc.Message, Resp rpc.Message](ctx context.Context, payload []byte, req Req, call func(context.Context, Req) (Resp, error)) (rpc.Message, error) {
	if err := req.UnmarshalWire(payload); err != nil {
		return nil, status.Error(codes.InvalidArgument, "parse error")
	}
	return call(ctx, req)
}

func (b *Bridge) authenticate(ctx context.Context, authHeader string) (context.Context, error) {
	if authHeader == "" {
		return nil, status.Error(codes.Unauthenticated, "no token")
	}
	raw := strings.TrimPrefix(authHeader, "Bearer ")
	claims, err := auth.ParseToken(raw, b.secret)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, "bad token")
	}
	return context.WithValue(ctx, middleware.UserIDKey, claims.UserID), nil
}

func writeError(w http.ResponseWriter, code codes.Code, msg string) {
	w.Header().Set("Content-Type", "application/grpc-web+proto")
	w.WriteHeader(http.StatusOK)
	trailer := fmt.Sprintf("grpc-status:%d\r\ngrpc-message:%s\r\n", code, msg)
	tf := make([]byte, 5+len(trailer))
	tf[0] = 0x80
	binary.BigEndian.PutUint32(tf[1:5], uint32(len(trailer)))
	copy(tf[5:], trailer)
	w.Write(tf)
}

func writeSuccess(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "application/grpc-web+proto")
	w.WriteHeader(http.StatusOK)
	// data frame
	df := make([]byte, 5+len(data))
	df[0] = 0x00
	binary.BigEndian.PutUint32(df[1:5], uint32(len(data)))
	copy(df[5:], data)
	w.Write(df)
	// trailer frame
	trailer := "grpc-status:0\r\n"
	tf := make([]byte, 5+len(trailer))
	tf[0] = 0x80
	binary.BigEndian.PutUint32(tf[1:5], uint32(len(trailer)))
	copy(tf[5:], trailer)
	w.Write(tf)
}
