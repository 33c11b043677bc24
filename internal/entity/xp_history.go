package entity

// XpHistoryEntry is append-only; never updated or deleted. SourceRef points
// to the validation that produced the credit and is unique, so a validation
// can never be credited twice.
type XpHistoryEntry struct {
	Base

	UserID string `gorm:"index"`
	User   Member `gorm:"foreignKey:UserID"`

	Title     string
	Points    int
	SourceRef string `gorm:"uniqueIndex"`
	Metadata  Map
}
