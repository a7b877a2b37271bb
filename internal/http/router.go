package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/voclab/voclab-backend/internal/http/handlers"
	httpMW "github.com/voclab/voclab-backend/internal/http/middleware"
	"github.com/voclab/voclab-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	HealthHandler  *httpH.HealthHandler
	ProjectHandler *httpH.ProjectHandler
	VcHandler      *httpH.VcHandler
	TtsHandler     *httpH.TtsHandler
	AudioHandler   *httpH.AudioHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")

	// Projects
	if cfg.ProjectHandler != nil {
		api.POST("/project", cfg.ProjectHandler.Create)
		api.GET("/project/member/:memberSeq", cfg.ProjectHandler.List)
		api.PUT("/project/:proSeq", cfg.ProjectHandler.Rename)
		api.DELETE("/project", cfg.ProjectHandler.Delete)
	}

	// Voice conversion pipeline
	if cfg.VcHandler != nil {
		vc := api.Group("/vc")
		vc.GET("/project/:proSeq", cfg.VcHandler.GetView)
		vc.POST("/project/:proSeq/src", cfg.VcHandler.UploadSrc)
		vc.POST("/project/:proSeq/trg", cfg.VcHandler.UploadTrg)
		vc.POST("/result", cfg.VcHandler.SaveResults)
		vc.POST("/text", cfg.VcHandler.SaveTexts)
		vc.PUT("/text/:vtSeq", cfg.VcHandler.UpdateText)
		vc.PUT("/row-order", cfg.VcHandler.UpdateRowOrder)
		vc.DELETE("/src", cfg.VcHandler.DeleteSrc)
		vc.GET("/src/:srcSeq", cfg.VcHandler.GetSrcFile)
		vc.GET("/result/:resSeq", cfg.VcHandler.GetResultFile)
		vc.POST("/src/urls", cfg.VcHandler.GetSrcURLs)
	}

	// TTS sentences
	if cfg.TtsHandler != nil {
		tts := api.Group("/tts/:projectSeq")
		tts.POST("/sentence", cfg.TtsHandler.AddSentence)
		tts.PUT("/sentence/:tsSeq", cfg.TtsHandler.UpdateSentence)
		tts.GET("/sentence/:tsSeq", cfg.TtsHandler.GetSentence)
		tts.DELETE("/sentence/:tsSeq", cfg.TtsHandler.DeleteSentence)
		tts.POST("/batch", cfg.TtsHandler.BatchSave)
		tts.GET("/sentences", cfg.TtsHandler.GetSentenceList)
	}

	// Audio assets
	if cfg.AudioHandler != nil {
		audio := api.Group("/audio")
		audio.GET("/file/:audioFileSeq", cfg.AudioHandler.Get)
		audio.GET("/search", cfg.AudioHandler.Search)
		audio.GET("/extension/:extension", cfg.AudioHandler.ListByExtension)
		audio.DELETE("/file", cfg.AudioHandler.Delete)
	}

	return r
}
