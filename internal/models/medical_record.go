package models

// MedicalRecordType represents the type of medical record
type MedicalRecordType string

const (
	RecordTypeDiagnosis    MedicalRecordType = "diagnosis"
	RecordTypePrescription MedicalRecordType = "prescription"
	RecordTypeLabResult    MedicalRecordType = "lab-result"
	RecordTypeVaccination  MedicalRecordType = "vaccination"
	RecordTypeNote         MedicalRecordType = "note"
)

// MedicalRecord represents a patient's medical record. It references the
// authoring doctor and the patient and lives independently of any appointment.
type MedicalRecord struct {
	BaseModel
	PatientID   string            `gorm:"size:36;index" json:"patientId"`
	DoctorID    string            `gorm:"size:36;index" json:"doctorId"`
	RecordType  MedicalRecordType `gorm:"size:50" json:"type"`
	RecordDate  string            `gorm:"size:10" json:"date"`
	Title       string            `gorm:"size:255;not null" json:"title"`
	Description string            `gorm:"type:text" json:"description"`

	// Relations
	Patient     User                      `gorm:"foreignKey:PatientID" json:"-"`
	Doctor      User                      `gorm:"foreignKey:DoctorID" json:"-"`
	Attachments []MedicalRecordAttachment `gorm:"foreignKey:MedicalRecordID" json:"attachments,omitempty"`
}

// MedicalRecordAttachment represents a file attached to a medical record
type MedicalRecordAttachment struct {
	BaseModel
	MedicalRecordID string `json:"medicalRecordId" gorm:"not null;type:varchar(36)"`
	FileName        string `json:"fileName" gorm:"not null"` // Original name of the file
	FileType        string `json:"fileType" gorm:"not null"` // MIME type of the file
	FileData        []byte `json:"-" gorm:"type:longblob;not null"`
}
