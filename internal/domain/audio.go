package domain

import (
	"time"

	"gorm.io/datatypes"
)

// AudioFile is a validated, uploaded audio asset. Immutable once persisted;
// Metadata holds the probe details (format, sample rate, channels).
type AudioFile struct {
	AudioFileSeq int64  `gorm:"column:audio_file_seq;primaryKey;autoIncrement" json:"audio_file_seq"`
	FileName     string `gorm:"column:file_name;not null" json:"file_name"`
	AudioURL     string `gorm:"column:audio_url;not null;uniqueIndex" json:"audio_url"`
	Extension    string `gorm:"column:extension;not null;index" json:"extension"`
	FileSize     int64  `gorm:"column:file_size" json:"file_size"`
	FileLength   int64  `gorm:"column:file_length" json:"file_length"`

	Metadata datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (AudioFile) TableName() string { return "audio_file" }
