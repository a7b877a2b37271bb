package repos

import (
	"github.com/voclab/voclab-backend/internal/data/repos/audio"
	"github.com/voclab/voclab-backend/internal/data/repos/project"
	"github.com/voclab/voclab-backend/internal/data/repos/tts"
	"github.com/voclab/voclab-backend/internal/data/repos/vc"
	"github.com/voclab/voclab-backend/internal/pkg/logger"
	"gorm.io/gorm"
)

type ProjectRepo = project.ProjectRepo

type AudioFileRepo = audio.AudioFileRepo

type VcRepo = vc.VcRepo
type VcSrcFileRepo = vc.VcSrcFileRepo
type VcTrgFileRepo = vc.VcTrgFileRepo
type VcResultFileRepo = vc.VcResultFileRepo
type VcTextRepo = vc.VcTextRepo

type VoiceRepo = tts.VoiceRepo
type StyleRepo = tts.StyleRepo
type TtsSentenceRepo = tts.TtsSentenceRepo
type TtsProgressStatusRepo = tts.TtsProgressStatusRepo
type TtsAudioFileRepo = tts.TtsAudioFileRepo

func NewProjectRepo(db *gorm.DB, baseLog *logger.Logger) ProjectRepo {
	return project.NewProjectRepo(db, baseLog)
}

func NewAudioFileRepo(db *gorm.DB, baseLog *logger.Logger) AudioFileRepo {
	return audio.NewAudioFileRepo(db, baseLog)
}

func NewVcRepo(db *gorm.DB, baseLog *logger.Logger) VcRepo { return vc.NewVcRepo(db, baseLog) }
func NewVcSrcFileRepo(db *gorm.DB, baseLog *logger.Logger) VcSrcFileRepo {
	return vc.NewVcSrcFileRepo(db, baseLog)
}
func NewVcTrgFileRepo(db *gorm.DB, baseLog *logger.Logger) VcTrgFileRepo {
	return vc.NewVcTrgFileRepo(db, baseLog)
}
func NewVcResultFileRepo(db *gorm.DB, baseLog *logger.Logger) VcResultFileRepo {
	return vc.NewVcResultFileRepo(db, baseLog)
}
func NewVcTextRepo(db *gorm.DB, baseLog *logger.Logger) VcTextRepo {
	return vc.NewVcTextRepo(db, baseLog)
}

func NewVoiceRepo(db *gorm.DB, baseLog *logger.Logger) VoiceRepo {
	return tts.NewVoiceRepo(db, baseLog)
}
func NewStyleRepo(db *gorm.DB, baseLog *logger.Logger) StyleRepo {
	return tts.NewStyleRepo(db, baseLog)
}
func NewTtsSentenceRepo(db *gorm.DB, baseLog *logger.Logger) TtsSentenceRepo {
	return tts.NewTtsSentenceRepo(db, baseLog)
}
func NewTtsProgressStatusRepo(db *gorm.DB, baseLog *logger.Logger) TtsProgressStatusRepo {
	return tts.NewTtsProgressStatusRepo(db, baseLog)
}
func NewTtsAudioFileRepo(db *gorm.DB, baseLog *logger.Logger) TtsAudioFileRepo {
	return tts.NewTtsAudioFileRepo(db, baseLog)
}
