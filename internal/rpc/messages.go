package rpc

// Dates travel as "2006-01-02" strings and times as "HH:MM"; timestamps as
// unix seconds. Enum values travel as their string names and are validated
// at the handler boundary.

type Appointment struct {
	Id              string // 1
	SeriesId        string // 2
	PatientId       string // 3
	PatientName     string // 4
	Date            string // 5
	StartTime       string // 6
	DurationMinutes int    // 7
	Notes           string // 8
	Recurrence      string // 9
	Status          string // 10
	PatientType     string // 11
}

func (m *Appointment) MarshalWire() ([]byte, error) {
	var b []byte
	b = appendString(b, 1, m.Id)
	b = appendString(b, 2, m.SeriesId)
	b = appendString(b, 3, m.PatientId)
	b = appendString(b, 4, m.PatientName)
	b = appendString(b, 5, m.Date)
	b = appendString(b, 6, m.StartTime)
	b = appendInt(b, 7, int64(m.DurationMinutes))
	b = appendString(b, 8, m.Notes)
	b = appendString(b, 9, m.Recurrence)
	b = appendString(b, 10, m.Status)
	b = appendString(b, 11, m.PatientType)
	return b, nil
}

func (m *Appointment) UnmarshalWire(data []byte) error {
	return walkFields(data, func(f field) error {
		switch f.Num {
		case 1:
			m.Id = f.String()
		case 2:
			m.SeriesId = f.String()
		case 3:
			m.PatientId = f.String()
		case 4:
			m.PatientName = f.String()
		case 5:
			m.Date = f.String()
		case 6:
			m.StartTime = f.String()
		case 7:
			m.DurationMinutes = f.Int()
		case 8:
			m.Notes = f.String()
		case 9:
			m.Recurrence = f.String()
		case 10:
			m.Status = f.String()
		case 11:
			m.PatientType = f.String()
		}
		return nil
	})
}

type Patient struct {
	Id        string // 1
	Name      string // 2
	Email     string // 3
	Phone     string // 4
	Cpf       string // 5
	Address   string // 6
	Notes     string // 7
	Type      string // 8
	CreatedAt int64  // 9, unix seconds
}

func (m *Patient) MarshalWire() ([]byte, error) {
	var b []byte
	b = appendString(b, 1, m.Id)
	b = appendString(b, 2, m.Name)
	b = appendString(b, 3, m.Email)
	b = appendString(b, 4, m.Phone)
	b = appendString(b, 5, m.Cpf)
	b = appendString(b, 6, m.Address)
	b = appendString(b, 7, m.Notes)
	b = appendString(b, 8, m.Type)
	b = appendInt(b, 9, m.CreatedAt)
	return b, nil
}

func (m *Patient) UnmarshalWire(data []byte) error {
	return walkFields(data, func(f field) error {
		switch f.Num {
		case 1:
			m.Id = f.String()
		case 2:
			m.Name = f.String()
		case 3:
			m.Email = f.String()
		case 4:
			m.Phone = f.String()
		case 5:
			m.Cpf = f.String()
		case 6:
			m.Address = f.String()
		case 7:
			m.Notes = f.String()
		case 8:
			m.Type = f.String()
		case 9:
			m.CreatedAt = f.Int64()
		}
		return nil
	})
}

// ----- auth -----

type LoginRequest struct {
	Email    string // 1
	Password string // 2
}

func (m *LoginRequest) MarshalWire() ([]byte, error) {
	var b []byte
	b = appendString(b, 1, m.Email)
	b = appendString(b, 2, m.Password)
	return b, nil
}

func (m *LoginRequest) UnmarshalWire(data []byte) error {
	return walkFields(data, func(f field) error {
		switch f.Num {
		case 1:
			m.Email = f.String()
		case 2:
			m.Password = f.String()
		}
		return nil
	})
}

type LoginResponse struct {
	Token        string // 1
	Name         string // 2
	RefreshToken string // 3
}

func (m *LoginResponse) MarshalWire() ([]byte, error) {
	var b []byte
	b = appendString(b, 1, m.Token)
	b = appendString(b, 2, m.Name)
	b = appendString(b, 3, m.RefreshToken)
	return b, nil
}

func (m *LoginResponse) UnmarshalWire(data []byte) error {
	return walkFields(data, func(f field) error {
		switch f.Num {
		case 1:
			m.Token = f.String()
		case 2:
			m.Name = f.String()
		case 3:
			m.RefreshToken = f.String()
		}
		return nil
	})
}

type RefreshRequest struct {
	RefreshToken string // 1
}

func (m *RefreshRequest) MarshalWire() ([]byte, error) {
	return appendString(nil, 1, m.RefreshToken), nil
}

func (m *RefreshRequest) UnmarshalWire(data []byte) error {
	return walkFields(data, func(f field) error {
		if f.Num == 1 {
			m.RefreshToken = f.String()
		}
		return nil
	})
}

type RefreshResponse struct {
	Token        string // 1
	RefreshToken string // 2
}

func (m *RefreshResponse) MarshalWire() ([]byte, error) {
	var b []byte
	b = appendString(b, 1, m.Token)
	b = appendString(b, 2, m.RefreshToken)
	return b, nil
}

func (m *RefreshResponse) UnmarshalWire(data []byte) error {
	return walkFields(data, func(f field) error {
		switch f.Num {
		case 1:
			m.Token = f.String()
		case 2:
			m.RefreshToken = f.String()
		}
		return nil
	})
}

// ----- appointments -----

type SaveAppointmentRequest struct {
	Appointment *Appointment // 1
}

func (m *SaveAppointmentRequest) MarshalWire() ([]byte, error) {
	var b []byte
	if m.Appointment != nil {
		return appendMessage(b, 1, m.Appointment)
	}
	return b, nil
}

func (m *SaveAppointmentRequest) UnmarshalWire(data []byte) error {
	return walkFields(data, func(f field) error {
		if f.Num == 1 {
			m.Appointment = &Appointment{}
			return m.Appointment.UnmarshalWire(f.Bytes())
		}
		return nil
	})
}

// SaveAppointmentResponse carries every record the save produced: one for
// an edit, the whole series for a new recurring appointment.
type SaveAppointmentResponse struct {
	Appointments []*Appointment // 1
}

func (m *SaveAppointmentResponse) MarshalWire() ([]byte, error) {
	var b []byte
	var err error
	for _, a := range m.Appointments {
		if b, err = appendMessage(b, 1, a); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (m *SaveAppointmentResponse) UnmarshalWire(data []byte) error {
	return walkFields(data, func(f field) error {
		if f.Num == 1 {
			a := &Appointment{}
			if err := a.UnmarshalWire(f.Bytes()); err != nil {
				return err
			}
			m.Appointments = append(m.Appointments, a)
		}
		return nil
	})
}

type DeleteAppointmentRequest struct {
	Id   string // 1
	Mode string // 2: "single" or "series"
}

func (m *DeleteAppointmentRequest) MarshalWire() ([]byte, error) {
	var b []byte
	b = appendString(b, 1, m.Id)
	b = appendString(b, 2, m.Mode)
	return b, nil
}

func (m *DeleteAppointmentRequest) UnmarshalWire(data []byte) error {
	return walkFields(data, func(f field) error {
		switch f.Num {
		case 1:
			m.Id = f.String()
		case 2:
			m.Mode = f.String()
		}
		return nil
	})
}

type DeleteAppointmentResponse struct{}

func (m *DeleteAppointmentResponse) MarshalWire() ([]byte, error) { return nil, nil }
func (m *DeleteAppointmentResponse) UnmarshalWire([]byte) error   { return nil }

type ListAppointmentsRequest struct{}

func (m *ListAppointmentsRequest) MarshalWire() ([]byte, error) { return nil, nil }
func (m *ListAppointmentsRequest) UnmarshalWire([]byte) error   { return nil }

type ListAppointmentsResponse struct {
	Appointments []*Appointment // 1
}

func (m *ListAppointmentsResponse) MarshalWire() ([]byte, error) {
	var b []byte
	var err error
	for _, a := range m.Appointments {
		if b, err = appendMessage(b, 1, a); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (m *ListAppointmentsResponse) UnmarshalWire(data []byte) error {
	return walkFields(data, func(f field) error {
		if f.Num == 1 {
			a := &Appointment{}
			if err := a.UnmarshalWire(f.Bytes()); err != nil {
				return err
			}
			m.Appointments = append(m.Appointments, a)
		}
		return nil
	})
}

type SlotAppointmentsRequest struct {
	Date string // 1: "2006-01-02"
	Hour string // 2: "HH:00"
}

func (m *SlotAppointmentsRequest) MarshalWire() ([]byte, error) {
	var b []byte
	b = appendString(b, 1, m.Date)
	b = appendString(b, 2, m.Hour)
	return b, nil
}

func (m *SlotAppointmentsRequest) UnmarshalWire(data []byte) error {
	return walkFields(data, func(f field) error {
		switch f.Num {
		case 1:
			m.Date = f.String()
		case 2:
			m.Hour = f.String()
		}
		return nil
	})
}

type SlotAppointmentsResponse struct {
	Appointments []*Appointment // 1
}

func (m *SlotAppointmentsResponse) MarshalWire() ([]byte, error) {
	var b []byte
	var err error
	for _, a := range m.Appointments {
		if b, err = appendMessage(b, 1, a); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (m *SlotAppointmentsResponse) UnmarshalWire(data []byte) error {
	return walkFields(data, func(f field) error {
		if f.Num == 1 {
			a := &Appointment{}
			if err := a.UnmarshalWire(f.Bytes()); err != nil {
				return err
			}
			m.Appointments = append(m.Appointments, a)
		}
		return nil
	})
}

// ----- patients -----

type SavePatientRequest struct {
	Patient *Patient // 1
}

func (m *SavePatientRequest) MarshalWire() ([]byte, error) {
	if m.Patient == nil {
		return nil, nil
	}
	return appendMessage(nil, 1, m.Patient)
}

func (m *SavePatientRequest) UnmarshalWire(data []byte) error {
	return walkFields(data, func(f field) error {
		if f.Num == 1 {
			m.Patient = &Patient{}
			return m.Patient.UnmarshalWire(f.Bytes())
		}
		return nil
	})
}

type SavePatientResponse struct {
	Patient *Patient // 1
}

func (m *SavePatientResponse) MarshalWire() ([]byte, error) {
	if m.Patient == nil {
		return nil, nil
	}
	return appendMessage(nil, 1, m.Patient)
}

func (m *SavePatientResponse) UnmarshalWire(data []byte) error {
	return walkFields(data, func(f field) error {
		if f.Num == 1 {
			m.Patient = &Patient{}
			return m.Patient.UnmarshalWire(f.Bytes())
		}
		return nil
	})
}

type DeletePatientRequest struct {
	Id string // 1
}

func (m *DeletePatientRequest) MarshalWire() ([]byte, error) {
	return appendString(nil, 1, m.Id), nil
}

func (m *DeletePatientRequest) UnmarshalWire(data []byte) error {
	return walkFields(data, func(f field) error {
		if f.Num == 1 {
			m.Id = f.String()
		}
		return nil
	})
}

type DeletePatientResponse struct{}

func (m *DeletePatientResponse) MarshalWire() ([]byte, error) { return nil, nil }
func (m *DeletePatientResponse) UnmarshalWire([]byte) error   { return nil }

type ListPatientsRequest struct{}

func (m *ListPatientsRequest) MarshalWire() ([]byte, error) { return nil, nil }
func (m *ListPatientsRequest) UnmarshalWire([]byte) error   { return nil }

type ListPatientsResponse struct {
	Patients []*Patient // 1
}

func (m *ListPatientsResponse) MarshalWire() ([]byte, error) {
	var b []byte
	var err error
	for _, p := range m.Patients {
		if b, err = appendMessage(b, 1, p); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (m *ListPatientsResponse) UnmarshalWire(data []byte) error {
	return walkFields(data, func(f field) error {
		if f.Num == 1 {
			p := &Patient{}
			if err := p.UnmarshalWire(f.Bytes()); err != nil {
				return err
			}
			m.Patients = append(m.Patients, p)
		}
		return nil
	})
}

// ----- AI collaborator -----

type RefineNotesRequest struct {
	Notes       string // 1
	PatientName string // 2
}

func (m *RefineNotesRequest) MarshalWire() ([]byte, error) {
	var b []byte
	b = appendString(b, 1, m.Notes)
	b = appendString(b, 2, m.PatientName)
	return b, nil
}

func (m *RefineNotesRequest) UnmarshalWire(data []byte) error {
	return walkFields(data, func(f field) error {
		switch f.Num {
		case 1:
			m.Notes = f.String()
		case 2:
			m.PatientName = f.String()
		}
		return nil
	})
}

type DailyInsightRequest struct{}

func (m *DailyInsightRequest) MarshalWire() ([]byte, error) { return nil, nil }
func (m *DailyInsightRequest) UnmarshalWire([]byte) error   { return nil }

type GenerateReportRequest struct {
	PatientId string // 1
	Kind      string // 2: "technical" or "supervision"
}

func (m *GenerateReportRequest) MarshalWire() ([]byte, error) {
	var b []byte
	b = appendString(b, 1, m.PatientId)
	b = appendString(b, 2, m.Kind)
	return b, nil
}

func (m *GenerateReportRequest) UnmarshalWire(data []byte) error {
	return walkFields(data, func(f field) error {
		switch f.Num {
		case 1:
			m.PatientId = f.String()
		case 2:
			m.Kind = f.String()
		}
		return nil
	})
}

type TextResponse struct {
	Text string // 1
}

func (m *TextResponse) MarshalWire() ([]byte, error) {
	return appendString(nil, 1, m.Text), nil
}

func (m *TextResponse) UnmarshalWire(data []byte) error {
	return walkFields(data, func(f field) error {
		if f.Num == 1 {
			m.Text = f.String()
		}
		return nil
	})
}
