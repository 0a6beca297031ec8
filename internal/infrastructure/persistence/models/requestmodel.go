package models

type RequestModel struct {
	ID          uint    `gorm:"primaryKey"`
	Ticket      string  `gorm:"uniqueIndex;size:50;not null"`
	Name        string  `gorm:"size:120;not null"`
	Email       string  `gorm:"size:160;not null"`
	Phone       *string `gorm:"size:30"`
	Type        string  `gorm:"size:60;not null;index"`
	Priority    string  `gorm:"size:20;not null"`
	Description string  `gorm:"type:text;not null"`
	Status      string  `gorm:"size:20;not null;index"`
	Address     *string `gorm:"size:300"`
	Latitude    *float64
	Longitude   *float64
	CreatedAt   int64 `gorm:"autoCreateTime:milli;not null;index"`

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (RequestModel) TableName() string {
	return "requests"
}

type AttachmentModel struct {
	ID         uint   `gorm:"primaryKey"`
	RequestID  uint   `gorm:"not null;index"`
	StorageKey string `gorm:"size:512;not null"`
	Active     bool   `gorm:"not null;default:true"`
	CreatedAt  int64  `gorm:"autoCreateTime:milli;not null"`
}

func (AttachmentModel) TableName() string {
	return "request_attachments"
}
