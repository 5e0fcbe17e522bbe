package scheduling

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"healthcare-portal-server/internal/models"
)

// GormStore implements Store against the application database.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a database-backed booking store.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// WindowsFor returns the doctor's available windows for one day of the week.
func (s *GormStore) WindowsFor(ctx context.Context, doctorID, dayOfWeek string) ([]models.Schedule, error) {
	var windows []models.Schedule
	err := s.db.WithContext(ctx).
		Where("doctor_id = ? AND day_of_week = ? AND is_available = ?", doctorID, dayOfWeek, true).
		Find(&windows).Error
	return windows, err
}

// PatientAppointments returns the patient's non-archived appointments.
// Status filtering is left to the conflict checks.
func (s *GormStore) PatientAppointments(ctx context.Context, patientID string) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.db.WithContext(ctx).
		Where("patient_id = ? AND is_deleted = ?", patientID, false).
		Find(&appointments).Error
	return appointments, err
}

// GetAppointment fetches a non-archived appointment by id.
func (s *GormStore) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	var appointment models.Appointment
	err := s.db.WithContext(ctx).
		First(&appointment, "id = ? AND is_deleted = ?", id, false).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

// CreateAppointment persists a new appointment.
func (s *GormStore) CreateAppointment(ctx context.Context, a *models.Appointment) error {
	return s.db.WithContext(ctx).Create(a).Error
}

// SaveAppointment updates an existing appointment in place.
func (s *GormStore) SaveAppointment(ctx context.Context, a *models.Appointment) error {
	return s.db.WithContext(ctx).Save(a).Error
}
