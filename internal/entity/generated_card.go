package entity

// GeneratedCard is the pinned image/metadata artifact of an approved
// application. It is upserted so a failed approval attempt can be corrected
// by a retry before the application is marked approved.
type GeneratedCard struct {
	SnowFlakeBase

	ApplicationID string      `gorm:"uniqueIndex"`
	Application   Application `gorm:"foreignKey:ApplicationID"`

	ImageCid    string
	MetadataCid string
	ImageUrl    string
	MetadataUrl string

	Prompt string
	Theme  string
}
