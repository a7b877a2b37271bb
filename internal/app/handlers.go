package app

import (
	"gorm.io/gorm"

	httpH "github.com/voclab/voclab-backend/internal/http/handlers"
	"github.com/voclab/voclab-backend/internal/pkg/logger"
)

type Handlers struct {
	Health  *httpH.HealthHandler
	Project *httpH.ProjectHandler
	Vc      *httpH.VcHandler
	Tts     *httpH.TtsHandler
	Audio   *httpH.AudioHandler
}

func wireHandlers(db *gorm.DB, log *logger.Logger, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:  httpH.NewHealthHandler(),
		Project: httpH.NewProjectHandler(db, log, s.Project),
		Vc:      httpH.NewVcHandler(db, log, s.Vc, s.AudioIngest),
		Tts:     httpH.NewTtsHandler(db, log, s.TtsSentence),
		Audio:   httpH.NewAudioHandler(db, log, s.AudioIngest),
	}
}
