package app

import (
	"gorm.io/gorm"

	"github.com/voclab/voclab-backend/internal/data/repos"
	"github.com/voclab/voclab-backend/internal/pkg/logger"
)

type Repos struct {
	Project repos.ProjectRepo

	AudioFile repos.AudioFileRepo

	Vc           repos.VcRepo
	VcSrcFile    repos.VcSrcFileRepo
	VcTrgFile    repos.VcTrgFileRepo
	VcResultFile repos.VcResultFileRepo
	VcText       repos.VcTextRepo

	Voice             repos.VoiceRepo
	Style             repos.StyleRepo
	TtsSentence       repos.TtsSentenceRepo
	TtsProgressStatus repos.TtsProgressStatusRepo
	TtsAudioFile      repos.TtsAudioFileRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Project: repos.NewProjectRepo(db, log),

		AudioFile: repos.NewAudioFileRepo(db, log),

		Vc:           repos.NewVcRepo(db, log),
		VcSrcFile:    repos.NewVcSrcFileRepo(db, log),
		VcTrgFile:    repos.NewVcTrgFileRepo(db, log),
		VcResultFile: repos.NewVcResultFileRepo(db, log),
		VcText:       repos.NewVcTextRepo(db, log),

		Voice:             repos.NewVoiceRepo(db, log),
		Style:             repos.NewStyleRepo(db, log),
		TtsSentence:       repos.NewTtsSentenceRepo(db, log),
		TtsProgressStatus: repos.NewTtsProgressStatusRepo(db, log),
		TtsAudioFile:      repos.NewTtsAudioFileRepo(db, log),
	}
}
