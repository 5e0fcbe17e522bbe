package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"healthcare-portal-server/internal/models"
	"healthcare-portal-server/internal/scheduling"
)

type fakeBookingStore struct {
	windows      []models.Schedule
	appointments []models.Appointment
}

func (f *fakeBookingStore) WindowsFor(_ context.Context, doctorID, dayOfWeek string) ([]models.Schedule, error) {
	var out []models.Schedule
	for _, w := range f.windows {
		if w.DoctorID == doctorID && w.DayOfWeek == dayOfWeek && w.IsAvailable {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeBookingStore) PatientAppointments(_ context.Context, patientID string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.PatientID == patientID && !a.IsDeleted {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeBookingStore) GetAppointment(_ context.Context, id string) (*models.Appointment, error) {
	for i := range f.appointments {
		if f.appointments[i].ID == id {
			return &f.appointments[i], nil
		}
	}
	return nil, scheduling.ErrAppointmentNotFound
}

func (f *fakeBookingStore) CreateAppointment(_ context.Context, a *models.Appointment) error {
	a.ID = "new-appointment"
	f.appointments = append(f.appointments, *a)
	return nil
}

func (f *fakeBookingStore) SaveAppointment(_ context.Context, a *models.Appointment) error {
	for i := range f.appointments {
		if f.appointments[i].ID == a.ID {
			f.appointments[i] = *a
			return nil
		}
	}
	return scheduling.ErrAppointmentNotFound
}

func validateRouter(store scheduling.Store, patientID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewAppointmentHandler(nil, scheduling.NewService(store, nil, nil), nil)

	router := gin.New()
	router.POST("/api/v1/appointments/validate", func(c *gin.Context) {
		if patientID != "" {
			c.Set("userID", patientID)
			c.Set("userRole", models.RolePatient)
		}
		c.Next()
	}, handler.ValidateBooking)
	return router
}

func postValidate(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments/validate",
		bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeResult(t *testing.T, rec *httptest.ResponseRecorder) scheduling.Result {
	t.Helper()
	var resp struct {
		Data scheduling.Result `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return resp.Data
}

func TestValidateBooking_Accepts(t *testing.T) {
	store := &fakeBookingStore{
		windows: []models.Schedule{{
			DoctorID:    "doc1",
			DayOfWeek:   "Monday",
			StartTime:   "09:00",
			EndTime:     "17:00",
			IsAvailable: true,
		}},
	}
	router := validateRouter(store, "pat1")

	rec := postValidate(t, router,
		`{"clinicId":"clinic1","doctorId":"doc1","date":"2025-05-05","time":"10:30"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	result := decodeResult(t, rec)
	if !result.OK {
		t.Fatalf("result = %+v, want OK", result)
	}
}

func TestValidateBooking_RejectsOutsideHours(t *testing.T) {
	store := &fakeBookingStore{
		windows: []models.Schedule{{
			DoctorID:    "doc1",
			DayOfWeek:   "Monday",
			StartTime:   "09:00",
			EndTime:     "17:00",
			IsAvailable: true,
		}},
	}
	router := validateRouter(store, "pat1")

	rec := postValidate(t, router,
		`{"clinicId":"clinic1","doctorId":"doc1","date":"2025-05-05","time":"18:00"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	result := decodeResult(t, rec)
	if result.OK {
		t.Fatal("expected rejection for a time outside the window")
	}
	if !strings.Contains(result.Reason, "available hours") {
		t.Fatalf("reason = %q, want the outside-hours message", result.Reason)
	}
}

func TestValidateBooking_RequiresAuthenticatedUser(t *testing.T) {
	router := validateRouter(&fakeBookingStore{}, "")

	rec := postValidate(t, router,
		`{"clinicId":"clinic1","doctorId":"doc1","date":"2025-05-05","time":"10:30"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
