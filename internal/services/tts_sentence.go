package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/voclab/voclab-backend/internal/data/repos"
	types "github.com/voclab/voclab-backend/internal/domain"
	pkgerrors "github.com/voclab/voclab-backend/internal/pkg/errors"
	"github.com/voclab/voclab-backend/internal/pkg/logger"
)

// SentenceAttributes is the synthesis parameter bundle carried by every
// sentence write.
type SentenceAttributes struct {
	Volume          int     `json:"volume"`
	Speed           float32 `json:"speed"`
	StartPitch      int     `json:"start_pitch"`
	EndPitch        int     `json:"end_pitch"`
	Emotion         string  `json:"emotion"`
	EmotionStrength int     `json:"emotion_strength"`
	SampleRate      int     `json:"sample_rate"`
	Alpha           int     `json:"alpha"`
	AudioFormat     string  `json:"audio_format"`
}

// SentenceRequest is the canonical create/update payload. StyleSeq is
// optional on create and required on update.
type SentenceRequest struct {
	VoiceSeq   int64              `json:"voice_seq"`
	StyleSeq   *int64             `json:"style_seq,omitempty"`
	Text       string             `json:"text"`
	SortOrder  int                `json:"sort_order"`
	Attributes SentenceAttributes `json:"attributes"`
}

// SentenceView wraps a stored sentence for response composition.
type SentenceView struct {
	Sentence *types.TtsSentence `json:"sentence"`
}

// SentenceBatchOp is the sealed set of batch operations. Exactly
// CreateSentenceOp and UpdateSentenceOp implement it; unknown wire tags are
// rejected when the batch is decoded, before any op reaches the service.
type SentenceBatchOp interface {
	sentenceBatchOp()
}

type CreateSentenceOp struct {
	Sentence *SentenceRequest
}

type UpdateSentenceOp struct {
	TsSeq    int64
	Sentence *SentenceRequest
}

func (CreateSentenceOp) sentenceBatchOp() {}
func (UpdateSentenceOp) sentenceBatchOp() {}

type TtsSentenceService interface {
	AddSentence(ctx context.Context, tx *gorm.DB, projectSeq int64, req *SentenceRequest) (*SentenceView, error)
	UpdateSentence(ctx context.Context, tx *gorm.DB, projectSeq, tsSeq int64, req *SentenceRequest) (*SentenceView, error)
	BatchSave(ctx context.Context, tx *gorm.DB, projectSeq int64, ops []SentenceBatchOp) ([]*SentenceView, error)
	GetSentence(ctx context.Context, tx *gorm.DB, tsSeq int64) (*SentenceView, error)
	GetSentenceList(ctx context.Context, tx *gorm.DB, projectSeq int64) ([]*SentenceView, error)
	DeleteSentence(ctx context.Context, tx *gorm.DB, tsSeq int64) (bool, error)
}

type ttsSentenceService struct {
	db           *gorm.DB
	log          *logger.Logger
	projectRepo  repos.ProjectRepo
	voiceRepo    repos.VoiceRepo
	styleRepo    repos.StyleRepo
	sentenceRepo repos.TtsSentenceRepo
	progressRepo repos.TtsProgressStatusRepo
}

func NewTtsSentenceService(
	db *gorm.DB,
	baseLog *logger.Logger,
	projectRepo repos.ProjectRepo,
	voiceRepo repos.VoiceRepo,
	styleRepo repos.StyleRepo,
	sentenceRepo repos.TtsSentenceRepo,
	progressRepo repos.TtsProgressStatusRepo,
) TtsSentenceService {
	serviceLog := baseLog.With("service", "TtsSentenceService")
	return &ttsSentenceService{
		db:           db,
		log:          serviceLog,
		projectRepo:  projectRepo,
		voiceRepo:    voiceRepo,
		styleRepo:    styleRepo,
		sentenceRepo: sentenceRepo,
		progressRepo: progressRepo,
	}
}

// resolveRefs validates the project and voice references, and the style
// reference when styleRequired or a style seq is supplied.
func (ts *ttsSentenceService) resolveRefs(ctx context.Context, tx *gorm.DB, projectSeq int64, req *SentenceRequest, styleRequired bool) error {
	p, err := ts.projectRepo.GetBySeq(ctx, tx, projectSeq)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("%w: project %d", pkgerrors.ErrNotFound, projectSeq)
	}

	v, err := ts.voiceRepo.GetBySeq(ctx, tx, req.VoiceSeq)
	if err != nil {
		return err
	}
	if v == nil {
		return fmt.Errorf("%w: voice %d", pkgerrors.ErrNotFound, req.VoiceSeq)
	}

	if req.StyleSeq == nil {
		if styleRequired {
			return fmt.Errorf("%w: style", pkgerrors.ErrNotFound)
		}
		return nil
	}
	s, err := ts.styleRepo.GetBySeq(ctx, tx, *req.StyleSeq)
	if err != nil {
		return err
	}
	if s == nil {
		return fmt.Errorf("%w: style %d", pkgerrors.ErrNotFound, *req.StyleSeq)
	}
	return nil
}

func applyRequest(s *types.TtsSentence, projectSeq int64, req *SentenceRequest) {
	s.ProSeq = projectSeq
	s.VoiceSeq = req.VoiceSeq
	s.StyleSeq = req.StyleSeq
	s.Text = req.Text
	s.SortOrder = req.SortOrder
	s.Volume = req.Attributes.Volume
	s.Speed = req.Attributes.Speed
	s.StartPitch = req.Attributes.StartPitch
	s.EndPitch = req.Attributes.EndPitch
	s.Emotion = req.Attributes.Emotion
	s.EmotionStrength = req.Attributes.EmotionStrength
	s.SampleRate = req.Attributes.SampleRate
	s.Alpha = req.Attributes.Alpha
	s.AudioFormat = req.Attributes.AudioFormat
}

// AddSentence persists the sentence and its initial CREATED progress row.
// The caller's transaction makes the pair atomic.
func (ts *ttsSentenceService) AddSentence(ctx context.Context, tx *gorm.DB, projectSeq int64, req *SentenceRequest) (*SentenceView, error) {
	if req == nil {
		return nil, pkgerrors.ErrInvalidInput
	}
	if err := ts.resolveRefs(ctx, tx, projectSeq, req, false); err != nil {
		return nil, err
	}

	sentence := &types.TtsSentence{}
	applyRequest(sentence, projectSeq, req)

	created, err := ts.sentenceRepo.Create(ctx, tx, sentence)
	if err != nil {
		return nil, err
	}
	if _, err := ts.progressRepo.Create(ctx, tx, &types.TtsProgressStatus{
		TsSeq:          created.TsSeq,
		ProgressStatus: types.ProgressCreated,
	}); err != nil {
		return nil, err
	}

	ts.log.Debug("sentence created", "ts_seq", created.TsSeq, "pro_seq", projectSeq)
	return &SentenceView{Sentence: created}, nil
}

// UpdateSentence overwrites every request-carried field under the same
// identifier and severs any linked rendered audio file, since a prior render
// no longer matches the new attributes. Style is required here.
func (ts *ttsSentenceService) UpdateSentence(ctx context.Context, tx *gorm.DB, projectSeq, tsSeq int64, req *SentenceRequest) (*SentenceView, error) {
	if req == nil {
		return nil, pkgerrors.ErrInvalidInput
	}
	if err := ts.resolveRefs(ctx, tx, projectSeq, req, true); err != nil {
		return nil, err
	}

	sentence, err := ts.sentenceRepo.GetBySeq(ctx, tx, tsSeq)
	if err != nil {
		return nil, err
	}
	if sentence == nil {
		return nil, fmt.Errorf("%w: sentence %d", pkgerrors.ErrNotFound, tsSeq)
	}

	applyRequest(sentence, projectSeq, req)
	sentence.TtsAudioFileSeq = nil
	sentence.TtsAudioFile = nil
	sentence.Voice = nil
	sentence.Style = nil

	saved, err := ts.sentenceRepo.Save(ctx, tx, sentence)
	if err != nil {
		return nil, err
	}
	return &SentenceView{Sentence: saved}, nil
}

// BatchSave dispatches ops in input order. Each op succeeds or fails on its
// own; atomicity across the batch is the caller's transaction choice.
func (ts *ttsSentenceService) BatchSave(ctx context.Context, tx *gorm.DB, projectSeq int64, ops []SentenceBatchOp) ([]*SentenceView, error) {
	views := make([]*SentenceView, 0, len(ops))
	for i, op := range ops {
		switch o := op.(type) {
		case CreateSentenceOp:
			if o.Sentence == nil {
				return nil, fmt.Errorf("%w: batch item %d has no sentence payload", pkgerrors.ErrInvalidInput, i)
			}
			v, err := ts.AddSentence(ctx, tx, projectSeq, o.Sentence)
			if err != nil {
				return nil, err
			}
			views = append(views, v)
		case UpdateSentenceOp:
			if o.Sentence == nil {
				return nil, fmt.Errorf("%w: batch item %d has no sentence payload", pkgerrors.ErrInvalidInput, i)
			}
			v, err := ts.UpdateSentence(ctx, tx, projectSeq, o.TsSeq, o.Sentence)
			if err != nil {
				return nil, err
			}
			views = append(views, v)
		default:
			return nil, fmt.Errorf("%w: batch item %d has unknown operation", pkgerrors.ErrInvalidInput, i)
		}
	}
	return views, nil
}

func (ts *ttsSentenceService) GetSentence(ctx context.Context, tx *gorm.DB, tsSeq int64) (*SentenceView, error) {
	sentence, err := ts.sentenceRepo.GetBySeq(ctx, tx, tsSeq)
	if err != nil {
		return nil, err
	}
	if sentence == nil {
		return nil, fmt.Errorf("%w: sentence %d", pkgerrors.ErrNotFound, tsSeq)
	}
	return &SentenceView{Sentence: sentence}, nil
}

func (ts *ttsSentenceService) GetSentenceList(ctx context.Context, tx *gorm.DB, projectSeq int64) ([]*SentenceView, error) {
	p, err := ts.projectRepo.GetBySeq(ctx, tx, projectSeq)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: project %d", pkgerrors.ErrNotFound, projectSeq)
	}

	sentences, err := ts.sentenceRepo.GetByProSeq(ctx, tx, projectSeq)
	if err != nil {
		return nil, err
	}
	views := make([]*SentenceView, 0, len(sentences))
	for _, s := range sentences {
		views = append(views, &SentenceView{Sentence: s})
	}
	return views, nil
}

// DeleteSentence removes the sentence row only; its progress history stays.
func (ts *ttsSentenceService) DeleteSentence(ctx context.Context, tx *gorm.DB, tsSeq int64) (bool, error) {
	sentence, err := ts.sentenceRepo.GetBySeq(ctx, tx, tsSeq)
	if err != nil {
		return false, err
	}
	if sentence == nil {
		return false, fmt.Errorf("%w: sentence %d", pkgerrors.ErrNotFound, tsSeq)
	}
	if err := ts.sentenceRepo.DeleteBySeq(ctx, tx, tsSeq); err != nil {
		return false, err
	}
	return true, nil
}
