package testutil

import (
	"testing"

	"gorm.io/gorm"

	types "github.com/voclab/voclab-backend/internal/domain"
)

// SeedProject inserts a minimal active project and returns it.
func SeedProject(tb testing.TB, tx *gorm.DB, memberSeq int64, name string) *types.Project {
	tb.Helper()

	p := &types.Project{
		MemberSeq: memberSeq,
		ProName:   name,
		Activate:  types.ActivateYes,
	}
	if err := tx.Create(p).Error; err != nil {
		tb.Fatalf("seed project: %v", err)
	}
	return p
}

// SeedVc attaches a conversion pipeline root to an existing project.
func SeedVc(tb testing.TB, tx *gorm.DB, proSeq int64) *types.Vc {
	tb.Helper()

	v := &types.Vc{ProSeq: proSeq}
	if err := tx.Create(v).Error; err != nil {
		tb.Fatalf("seed vc: %v", err)
	}
	return v
}

// SeedSrcFile inserts one source row with the given order.
func SeedSrcFile(tb testing.TB, tx *gorm.DB, proSeq int64, rowOrder int, fileName string) *types.VcSrcFile {
	tb.Helper()

	s := &types.VcSrcFile{
		ProSeq:   proSeq,
		RowOrder: rowOrder,
		FileName: fileName,
		FileURL:  "https://cdn.example.com/concat/audio/" + fileName,
		Activate: types.ActivateYes,
	}
	if err := tx.Create(s).Error; err != nil {
		tb.Fatalf("seed src file: %v", err)
	}
	return s
}

// SeedVoice inserts an enabled voice.
func SeedVoice(tb testing.TB, tx *gorm.DB, name, language string) *types.Voice {
	tb.Helper()

	v := &types.Voice{Name: name, Language: language, Enabled: types.ActivateYes}
	if err := tx.Create(v).Error; err != nil {
		tb.Fatalf("seed voice: %v", err)
	}
	return v
}

// SeedStyle inserts a style.
func SeedStyle(tb testing.TB, tx *gorm.DB, name string) *types.Style {
	tb.Helper()

	s := &types.Style{Name: name, Mood: "neutral"}
	if err := tx.Create(s).Error; err != nil {
		tb.Fatalf("seed style: %v", err)
	}
	return s
}

// SeedAudioFile inserts an ingested asset row.
func SeedAudioFile(tb testing.TB, tx *gorm.DB, fileName, url, extension string) *types.AudioFile {
	tb.Helper()

	f := &types.AudioFile{
		FileName:  fileName,
		AudioURL:  url,
		Extension: extension,
	}
	if err := tx.Create(f).Error; err != nil {
		tb.Fatalf("seed audio file: %v", err)
	}
	return f
}
