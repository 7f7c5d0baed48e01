package handler

import (
	"context"
	"errors"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"psi-agenda-api/internal/model"
	"psi-agenda-api/internal/rpc"
	"psi-agenda-api/internal/schedule"
)

const dateLayout = "2006-01-02"

func (h *Handler) SaveAppointment(ctx context.Context, req *rpc.SaveAppointmentRequest) (*rpc.SaveAppointmentResponse, error) {
	if req.Appointment == nil {
		return nil, status.Error(codes.InvalidArgument, "appointment required")
	}

	draft, err := fromWireAppointment(req.Appointment)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	saved, err := h.svc.SaveAppointment(ctx, draft)
	switch {
	case err == nil:
	case errors.Is(err, schedule.ErrMissingPatient),
		errors.Is(err, schedule.ErrMissingDate),
		errors.Is(err, schedule.ErrMissingStartTime),
		errors.Is(err, schedule.ErrBadDuration):
		return nil, status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, schedule.ErrNotFound):
		return nil, status.Error(codes.NotFound, "appointment not found")
	default:
		return nil, status.Error(codes.Internal, "internal error")
	}

	resp := &rpc.SaveAppointmentResponse{}
	for i := range saved {
		resp.Appointments = append(resp.Appointments, toWireAppointment(&saved[i]))
	}
	return resp, nil
}

func (h *Handler) DeleteAppointment(ctx context.Context, req *rpc.DeleteAppointmentRequest) (*rpc.DeleteAppointmentResponse, error) {
	if req.Id == "" {
		return nil, status.Error(codes.InvalidArgument, "id required")
	}
	err := h.svc.DeleteAppointment(ctx, req.Id, schedule.DeleteMode(req.Mode))
	if errors.Is(err, schedule.ErrBadDeleteMode) {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}
	return &rpc.DeleteAppointmentResponse{}, nil
}

func (h *Handler) ListAppointments(ctx context.Context, req *rpc.ListAppointmentsRequest) (*rpc.ListAppointmentsResponse, error) {
	appts, err := h.svc.Appointments(ctx)
	if err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}
	resp := &rpc.ListAppointmentsResponse{}
	for i := range appts {
		resp.Appointments = append(resp.Appointments, toWireAppointment(&appts[i]))
	}
	return resp, nil
}

func (h *Handler) SlotAppointments(ctx context.Context, req *rpc.SlotAppointmentsRequest) (*rpc.SlotAppointmentsResponse, error) {
	day, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "bad date")
	}
	if req.Hour == "" {
		return nil, status.Error(codes.InvalidArgument, "hour required")
	}

	appts, err := h.svc.Appointments(ctx)
	if err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}

	resp := &rpc.SlotAppointmentsResponse{}
	for _, a := range schedule.SlotOccupants(day, req.Hour, appts) {
		a := a
		resp.Appointments = append(resp.Appointments, toWireAppointment(&a))
	}
	return resp, nil
}

func (h *Handler) SavePatient(ctx context.Context, req *rpc.SavePatientRequest) (*rpc.SavePatientResponse, error) {
	if req.Patient == nil {
		return nil, status.Error(codes.InvalidArgument, "patient required")
	}
	ptype, err := model.ParsePatientType(req.Patient.Type)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	saved, err := h.svc.SavePatient(ctx, model.Patient{
		ID:      req.Patient.Id,
		Name:    req.Patient.Name,
		Email:   req.Patient.Email,
		Phone:   req.Patient.Phone,
		CPF:     req.Patient.Cpf,
		Address: req.Patient.Address,
		Notes:   req.Patient.Notes,
		Type:    ptype,
	})
	if errors.Is(err, schedule.ErrMissingName) {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}
	return &rpc.SavePatientResponse{Patient: toWirePatient(&saved)}, nil
}

func (h *Handler) DeletePatient(ctx context.Context, req *rpc.DeletePatientRequest) (*rpc.DeletePatientResponse, error) {
	if req.Id == "" {
		return nil, status.Error(codes.InvalidArgument, "id required")
	}
	if err := h.svc.DeletePatient(ctx, req.Id); err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}
	return &rpc.DeletePatientResponse{}, nil
}

func (h *Handler) ListPatients(ctx context.Context, req *rpc.ListPatientsRequest) (*rpc.ListPatientsResponse, error) {
	patients, err := h.svc.Patients(ctx)
	if err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}
	resp := &rpc.ListPatientsResponse{}
	for i := range patients {
		resp.Patients = append(resp.Patients, toWirePatient(&patients[i]))
	}
	return resp, nil
}

func fromWireAppointment(w *rpc.Appointment) (model.Appointment, error) {
	var a model.Appointment

	recurrence, err := model.ParseRecurrence(w.Recurrence)
	if err != nil {
		return a, err
	}
	st, err := model.ParseStatus(w.Status)
	if err != nil {
		return a, err
	}

	var date time.Time
	if w.Date != "" {
		if date, err = time.Parse(dateLayout, w.Date); err != nil {
			return a, errors.New("bad date")
		}
	}

	return model.Appointment{
		ID:              w.Id,
		SeriesID:        w.SeriesId,
		PatientID:       w.PatientId,
		PatientName:     w.PatientName,
		Date:            date,
		StartTime:       w.StartTime,
		DurationMinutes: w.DurationMinutes,
		Notes:           w.Notes,
		Recurrence:      recurrence,
		Status:          st,
	}, nil
}

func toWireAppointment(a *model.Appointment) *rpc.Appointment {
	return &rpc.Appointment{
		Id:              a.ID,
		SeriesId:        a.SeriesID,
		PatientId:       a.PatientID,
		PatientName:     a.PatientName,
		Date:            a.Date.Format(dateLayout),
		StartTime:       a.StartTime,
		DurationMinutes: a.DurationMinutes,
		Notes:           a.Notes,
		Recurrence:      string(a.Recurrence),
		Status:          string(a.Status),
		PatientType:     string(a.PatientType),
	}
}

func toWirePatient(p *model.Patient) *rpc.Patient {
	w := &rpc.Patient{
		Id:      p.ID,
		Name:    p.Name,
		Email:   p.Email,
		Phone:   p.Phone,
		Cpf:     p.CPF,
		Address: p.Address,
		Notes:   p.Notes,
		Type:    string(p.Type),
	}
	if !p.CreatedAt.IsZero() {
		w.CreatedAt = p.CreatedAt.Unix()
	}
	return w
}
