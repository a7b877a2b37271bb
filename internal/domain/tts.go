package domain

import (
	"time"
)

// Progress states of a sentence. The backend only ever writes
// ProgressCreated; later states are appended by the synthesis worker.
const (
	ProgressCreated    = "CREATED"
	ProgressInProgress = "IN_PROGRESS"
	ProgressFinished   = "FINISHED"
	ProgressFailed     = "FAILED"
)

type Voice struct {
	VoiceSeq int64  `gorm:"column:voice_seq;primaryKey;autoIncrement" json:"voice_seq"`
	Name     string `gorm:"column:name;not null" json:"name"`
	Language string `gorm:"column:language" json:"language"`
	Gender   string `gorm:"column:gender" json:"gender"`
	Enabled  string `gorm:"column:enabled;type:char(1);not null;default:'Y'" json:"enabled"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Voice) TableName() string { return "voice" }

type Style struct {
	StyleSeq int64  `gorm:"column:style_seq;primaryKey;autoIncrement" json:"style_seq"`
	Name     string `gorm:"column:name;not null" json:"name"`
	Mood     string `gorm:"column:mood" json:"mood"`
	Contents string `gorm:"column:contents" json:"contents"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Style) TableName() string { return "style" }

// TtsAudioFile is a rendered synthesis output written by the external worker.
type TtsAudioFile struct {
	TafSeq      int64  `gorm:"column:taf_seq;primaryKey;autoIncrement" json:"taf_seq"`
	AudioName   string `gorm:"column:audio_name" json:"audio_name"`
	AudioURL    string `gorm:"column:audio_url;not null" json:"audio_url"`
	AudioExtension string `gorm:"column:audio_extension" json:"audio_extension"`
	AudioSize   int64  `gorm:"column:audio_size" json:"audio_size"`
	AudioLength int64  `gorm:"column:audio_length" json:"audio_length"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (TtsAudioFile) TableName() string { return "tts_audio_file" }

// TtsSentence carries the text plus the full synthesis attribute bundle.
// TtsAudioFileSeq is severed whenever the attributes change, since a prior
// render no longer matches them.
type TtsSentence struct {
	TsSeq   int64    `gorm:"column:ts_seq;primaryKey;autoIncrement" json:"ts_seq"`
	ProSeq  int64    `gorm:"column:pro_seq;not null;index" json:"pro_seq"`
	Project *Project `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProSeq;references:ProSeq" json:"project,omitempty"`

	VoiceSeq int64  `gorm:"column:voice_seq;not null;index" json:"voice_seq"`
	Voice    *Voice `gorm:"foreignKey:VoiceSeq;references:VoiceSeq" json:"voice,omitempty"`

	StyleSeq *int64 `gorm:"column:style_seq;index" json:"style_seq,omitempty"`
	Style    *Style `gorm:"foreignKey:StyleSeq;references:StyleSeq" json:"style,omitempty"`

	Text      string `gorm:"column:text;type:text;not null" json:"text"`
	SortOrder int    `gorm:"column:sort_order" json:"sort_order"`

	Volume          int     `gorm:"column:volume" json:"volume"`
	Speed           float32 `gorm:"column:speed" json:"speed"`
	StartPitch      int     `gorm:"column:start_pitch" json:"start_pitch"`
	EndPitch        int     `gorm:"column:end_pitch" json:"end_pitch"`
	Emotion         string  `gorm:"column:emotion" json:"emotion"`
	EmotionStrength int     `gorm:"column:emotion_strength" json:"emotion_strength"`
	SampleRate      int     `gorm:"column:sample_rate" json:"sample_rate"`
	Alpha           int     `gorm:"column:alpha" json:"alpha"`
	AudioFormat     string  `gorm:"column:audio_format" json:"audio_format"`

	TtsAudioFileSeq *int64        `gorm:"column:tts_audio_file_seq" json:"tts_audio_file_seq,omitempty"`
	TtsAudioFile    *TtsAudioFile `gorm:"foreignKey:TtsAudioFileSeq;references:TafSeq" json:"tts_audio_file,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (TtsSentence) TableName() string { return "tts_sentence" }

// TtsProgressStatus rows are append-only; a sentence's history is never
// mutated in place.
type TtsProgressStatus struct {
	TpsSeq      int64        `gorm:"column:tps_seq;primaryKey;autoIncrement" json:"tps_seq"`
	TsSeq       int64        `gorm:"column:ts_seq;not null;index" json:"ts_seq"`
	TtsSentence *TtsSentence `gorm:"foreignKey:TsSeq;references:TsSeq;constraint:-" json:"tts_sentence,omitempty"`

	ProgressStatus string `gorm:"column:progress_status;not null" json:"progress_status"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (TtsProgressStatus) TableName() string { return "tts_progress_status" }
