package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/voclab/voclab-backend/internal/pkg/logger"
	"github.com/voclab/voclab-backend/internal/platform/gcp"
	"github.com/voclab/voclab-backend/internal/services"
)

type Services struct {
	Bucket      gcp.BucketService
	Project     services.ProjectService
	AudioIngest services.AudioIngestService
	Vc          services.VcService
	TtsSentence services.TtsSentenceService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos) (Services, error) {
	log.Info("Wiring services...")

	bucket, err := gcp.NewBucketService(log)
	if err != nil {
		return Services{}, fmt.Errorf("init bucket service: %w", err)
	}

	return Services{
		Bucket:      bucket,
		Project:     services.NewProjectService(db, log, r.Project),
		AudioIngest: services.NewAudioIngestService(db, log, r.AudioFile, bucket),
		Vc:          services.NewVcService(db, log, r.Vc, r.VcSrcFile, r.VcTrgFile, r.VcResultFile, r.VcText),
		TtsSentence: services.NewTtsSentenceService(db, log, r.Project, r.Voice, r.Style, r.TtsSentence, r.TtsProgressStatus),
	}, nil
}
