package db

import (
	types "github.com/voclab/voclab-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(

		// =========================
		// Projects
		// =========================
		&types.Project{},

		// =========================
		// Audio assets (validated uploads)
		// =========================
		&types.AudioFile{},

		// =========================
		// Voice conversion pipeline
		// =========================
		&types.Vc{},
		&types.VcSrcFile{},
		&types.VcTrgFile{},
		&types.VcResultFile{},
		&types.VcText{},

		// =========================
		// TTS sentences
		// =========================
		&types.Voice{},
		&types.Style{},
		&types.TtsAudioFile{},
		&types.TtsSentence{},
		&types.TtsProgressStatus{},
	)
}
