package models

// FAQStatus represents the review state of a submitted question
type FAQStatus string

const (
	FAQStatusPending  FAQStatus = "pending"
	FAQStatusAnswered FAQStatus = "answered"
)

// FAQ represents a question submitted through the portal's FAQ page.
// UserID is empty for anonymous submissions.
type FAQ struct {
	BaseModel
	UserID   string    `gorm:"size:36;index" json:"userId,omitempty"`
	Category string    `gorm:"size:50;default:'General'" json:"category"`
	Question string    `gorm:"type:text;not null" json:"question"`
	Answer   string    `gorm:"type:text" json:"answer,omitempty"`
	Status   FAQStatus `gorm:"size:20;default:'pending'" json:"status"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
