package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "agenda.v1.AgendaService"

// Full method names, used by the interceptors' allow lists.
const (
	MethodLogin             = "/" + ServiceName + "/Login"
	MethodRefresh           = "/" + ServiceName + "/Refresh"
	MethodSaveAppointment   = "/" + ServiceName + "/SaveAppointment"
	MethodDeleteAppointment = "/" + ServiceName + "/DeleteAppointment"
	MethodListAppointments  = "/" + ServiceName + "/ListAppointments"
	MethodSlotAppointments  = "/" + ServiceName + "/SlotAppointments"
	MethodSavePatient       = "/" + ServiceName + "/SavePatient"
	MethodDeletePatient     = "/" + ServiceName + "/DeletePatient"
	MethodListPatients      = "/" + ServiceName + "/ListPatients"
	MethodRefineNotes       = "/" + ServiceName + "/RefineNotes"
	MethodDailyInsight      = "/" + ServiceName + "/DailyInsight"
	MethodGenerateReport    = "/" + ServiceName + "/GenerateReport"
)

// AgendaServer is the full service surface.
type AgendaServer interface {
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	Refresh(context.Context, *RefreshRequest) (*RefreshResponse, error)
	SaveAppointment(context.Context, *SaveAppointmentRequest) (*SaveAppointmentResponse, error)
	DeleteAppointment(context.Context, *DeleteAppointmentRequest) (*DeleteAppointmentResponse, error)
	ListAppointments(context.Context, *ListAppointmentsRequest) (*ListAppointmentsResponse, error)
	SlotAppointments(context.Context, *SlotAppointmentsRequest) (*SlotAppointmentsResponse, error)
	SavePatient(context.Context, *SavePatientRequest) (*SavePatientResponse, error)
	DeletePatient(context.Context, *DeletePatientRequest) (*DeletePatientResponse, error)
	ListPatients(context.Context, *ListPatientsRequest) (*ListPatientsResponse, error)
	RefineNotes(context.Context, *RefineNotesRequest) (*TextResponse, error)
	DailyInsight(context.Context, *DailyInsightRequest) (*TextResponse, error)
	GenerateReport(context.Context, *GenerateReportRequest) (*TextResponse, error)
}

// RegisterAgendaServer attaches the hand-written service descriptor. The
// server must be built with grpc.ForceServerCodec(rpc.Codec{}).
func RegisterAgendaServer(s grpc.ServiceRegistrar, srv AgendaServer) {
	s.RegisterService(&agendaServiceDesc, srv)
}

// unary builds a MethodDesc handler for one method. newReq allocates the
// request message; call invokes the server.
func unary[Req Message, Resp Message](method string, newReq func() Req, call func(AgendaServer, context.Context, Req) (Resp, error)) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := newReq()
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AgendaServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(AgendaServer), ctx, req.(Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var agendaServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AgendaServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Login",
			Handler: unary(MethodLogin,
				func() *LoginRequest { return &LoginRequest{} },
				AgendaServer.Login),
		},
		{
			MethodName: "Refresh",
			Handler: unary(MethodRefresh,
				func() *RefreshRequest { return &RefreshRequest{} },
				AgendaServer.Refresh),
		},
		{
			MethodName: "SaveAppointment",
			Handler: unary(MethodSaveAppointment,
				func() *SaveAppointmentRequest { return &SaveAppointmentRequest{} },
				AgendaServer.SaveAppointment),
		},
		{
			MethodName: "DeleteAppointment",
			Handler: unary(MethodDeleteAppointment,
				func() *DeleteAppointmentRequest { return &DeleteAppointmentRequest{} },
				AgendaServer.DeleteAppointment),
		},
		{
			MethodName: "ListAppointments",
			Handler: unary(MethodListAppointments,
				func() *ListAppointmentsRequest { return &ListAppointmentsRequest{} },
				AgendaServer.ListAppointments),
		},
		{
			MethodName: "SlotAppointments",
			Handler: unary(MethodSlotAppointments,
				func() *SlotAppointmentsRequest { return &SlotAppointmentsRequest{} },
				AgendaServer.SlotAppointments),
		},
		{
			MethodName: "SavePatient",
			Handler: unary(MethodSavePatient,
				func() *SavePatientRequest { return &SavePatientRequest{} },
				AgendaServer.SavePatient),
		},
		{
			MethodName: "DeletePatient",
			Handler: unary(MethodDeletePatient,
				func() *DeletePatientRequest { return &DeletePatientRequest{} },
				AgendaServer.DeletePatient),
		},
		{
			MethodName: "ListPatients",
			Handler: unary(MethodListPatients,
				func() *ListPatientsRequest { return &ListPatientsRequest{} },
				AgendaServer.ListPatients),
		},
		{
			MethodName: "RefineNotes",
			Handler: unary(MethodRefineNotes,
				func() *RefineNotesRequest { return &RefineNotesRequest{} },
				AgendaServer.RefineNotes),
		},
		{
			MethodName: "DailyInsight",
			Handler: unary(MethodDailyInsight,
				func() *DailyInsightRequest { return &DailyInsightRequest{} },
				AgendaServer.DailyInsight),
		},
		{
			MethodName: "GenerateReport",
			Handler: unary(MethodGenerateReport,
				func() *GenerateReportRequest { return &GenerateReportRequest{} },
				AgendaServer.GenerateReport),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "agenda/v1/agenda.proto",
}
