package models

// Schedule represents one recurring weekly availability window for a doctor.
// StartTime and EndTime are 24-hour "15:04" strings; StartTime > EndTime is an
// overnight window wrapping past midnight into the next calendar day.
type Schedule struct {
	BaseModel
	DoctorID    string `gorm:"size:36;index" json:"doctorId"`
	DayOfWeek   string `gorm:"size:10;index" json:"dayOfWeek"`
	StartTime   string `gorm:"size:5" json:"startTime"`
	EndTime     string `gorm:"size:5" json:"endTime"`
	IsAvailable bool   `gorm:"default:true" json:"isAvailable"`

	// Relations
	Doctor User `gorm:"foreignKey:DoctorID" json:"-"`
}
