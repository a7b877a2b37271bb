package vc_test

import (
	"context"
	"testing"

	"github.com/voclab/voclab-backend/internal/data/repos/testutil"
	"github.com/voclab/voclab-backend/internal/data/repos/vc"
	types "github.com/voclab/voclab-backend/internal/domain"
)

func TestGetOrCreateByProSeq(t *testing.T) {
	tx := testutil.Tx(t)
	log := testutil.Logger(t)
	ctx := context.Background()

	project := testutil.SeedProject(t, tx, 1, "vc test")
	repo := vc.NewVcRepo(tx, log)

	first, err := repo.GetOrCreateByProSeq(ctx, tx, project.ProSeq)
	if err != nil {
		t.Fatalf("GetOrCreateByProSeq: err=%v", err)
	}
	if first.ProSeq != project.ProSeq {
		t.Fatalf("GetOrCreateByProSeq: want pro_seq %d got %d", project.ProSeq, first.ProSeq)
	}

	second, err := repo.GetOrCreateByProSeq(ctx, tx, project.ProSeq)
	if err != nil {
		t.Fatalf("GetOrCreateByProSeq (second): err=%v", err)
	}
	if second.ProSeq != first.ProSeq {
		t.Fatalf("GetOrCreateByProSeq not idempotent: %d vs %d", second.ProSeq, first.ProSeq)
	}

	var count int64
	if err := tx.Model(&types.Vc{}).Where("pro_seq = ?", project.ProSeq).Count(&count).Error; err != nil {
		t.Fatalf("count pipelines: err=%v", err)
	}
	if count != 1 {
		t.Fatalf("pipeline rows: want 1 got %d", count)
	}
}

func TestSrcFileCountAndOrder(t *testing.T) {
	tx := testutil.Tx(t)
	log := testutil.Logger(t)
	ctx := context.Background()

	project := testutil.SeedProject(t, tx, 1, "count test")
	testutil.SeedVc(t, tx, project.ProSeq)
	repo := vc.NewVcSrcFileRepo(tx, log)

	count, err := repo.CountByProSeq(ctx, tx, project.ProSeq)
	if err != nil {
		t.Fatalf("CountByProSeq: err=%v", err)
	}
	if count != 0 {
		t.Fatalf("CountByProSeq on empty pipeline: want 0 got %d", count)
	}

	a := testutil.SeedSrcFile(t, tx, project.ProSeq, 1, "a.wav")
	b := testutil.SeedSrcFile(t, tx, project.ProSeq, 2, "b.wav")
	c := testutil.SeedSrcFile(t, tx, project.ProSeq, 3, "c.wav")

	count, err = repo.CountByProSeq(ctx, tx, project.ProSeq)
	if err != nil {
		t.Fatalf("CountByProSeq: err=%v", err)
	}
	if count != 3 {
		t.Fatalf("CountByProSeq: want 3 got %d", count)
	}

	// Soft-deleted rows stay visible and keep their position.
	b.Activate = types.ActivateNo
	if _, err := repo.Save(ctx, tx, b); err != nil {
		t.Fatalf("Save: err=%v", err)
	}

	rows, err := repo.GetByProSeq(ctx, tx, project.ProSeq)
	if err != nil {
		t.Fatalf("GetByProSeq: err=%v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("GetByProSeq: want 3 rows got %d", len(rows))
	}
	wantSeqs := []int64{a.SrcSeq, b.SrcSeq, c.SrcSeq}
	for i, row := range rows {
		if row.SrcSeq != wantSeqs[i] {
			t.Fatalf("GetByProSeq order at %d: want %d got %d", i, wantSeqs[i], row.SrcSeq)
		}
	}
	if rows[1].Activate != types.ActivateNo {
		t.Fatalf("soft-deleted row activate: want N got %s", rows[1].Activate)
	}
	if rows[1].RowOrder != 2 {
		t.Fatalf("soft-deleted row order: want 2 got %d", rows[1].RowOrder)
	}
}

func TestResultFileLatestBySrcSeq(t *testing.T) {
	tx := testutil.Tx(t)
	log := testutil.Logger(t)
	ctx := context.Background()

	project := testutil.SeedProject(t, tx, 1, "latest test")
	testutil.SeedVc(t, tx, project.ProSeq)
	src := testutil.SeedSrcFile(t, tx, project.ProSeq, 1, "src.wav")

	repo := vc.NewVcResultFileRepo(tx, log)

	latest, err := repo.GetLatestBySrcSeq(ctx, tx, src.SrcSeq)
	if err != nil {
		t.Fatalf("GetLatestBySrcSeq on empty: err=%v", err)
	}
	if latest != nil {
		t.Fatalf("GetLatestBySrcSeq on empty: want nil got %+v", latest)
	}

	older := &types.VcResultFile{SrcSeq: src.SrcSeq, FileName: "old.wav", FileURL: "u1"}
	newer := &types.VcResultFile{SrcSeq: src.SrcSeq, FileName: "new.wav", FileURL: "u2"}
	if _, err := repo.Create(ctx, tx, []*types.VcResultFile{older}); err != nil {
		t.Fatalf("Create: err=%v", err)
	}
	if _, err := repo.Create(ctx, tx, []*types.VcResultFile{newer}); err != nil {
		t.Fatalf("Create: err=%v", err)
	}

	latest, err = repo.GetLatestBySrcSeq(ctx, tx, src.SrcSeq)
	if err != nil {
		t.Fatalf("GetLatestBySrcSeq: err=%v", err)
	}
	if latest == nil || latest.ResSeq != newer.ResSeq {
		t.Fatalf("GetLatestBySrcSeq: want res_seq %d got %+v", newer.ResSeq, latest)
	}
}

func TestTextLatestAndSave(t *testing.T) {
	tx := testutil.Tx(t)
	log := testutil.Logger(t)
	ctx := context.Background()

	project := testutil.SeedProject(t, tx, 1, "text test")
	testutil.SeedVc(t, tx, project.ProSeq)
	src := testutil.SeedSrcFile(t, tx, project.ProSeq, 1, "src.wav")

	repo := vc.NewVcTextRepo(tx, log)

	first := &types.VcText{SrcSeq: src.SrcSeq, Comment: "first", Length: 5}
	second := &types.VcText{SrcSeq: src.SrcSeq, Comment: "second", Length: 6}
	if _, err := repo.Create(ctx, tx, []*types.VcText{first}); err != nil {
		t.Fatalf("Create: err=%v", err)
	}
	if _, err := repo.Create(ctx, tx, []*types.VcText{second}); err != nil {
		t.Fatalf("Create: err=%v", err)
	}

	latest, err := repo.GetLatestBySrcSeq(ctx, tx, src.SrcSeq)
	if err != nil {
		t.Fatalf("GetLatestBySrcSeq: err=%v", err)
	}
	if latest == nil || latest.VtSeq != second.VtSeq {
		t.Fatalf("GetLatestBySrcSeq: want vt_seq %d got %+v", second.VtSeq, latest)
	}

	// Update-in-place keeps the identifier.
	latest.Comment = "edited"
	latest.Length = 6
	saved, err := repo.Save(ctx, tx, latest)
	if err != nil {
		t.Fatalf("Save: err=%v", err)
	}
	if saved.VtSeq != second.VtSeq {
		t.Fatalf("Save changed identifier: want %d got %d", second.VtSeq, saved.VtSeq)
	}

	reloaded, err := repo.GetBySeq(ctx, tx, second.VtSeq)
	if err != nil {
		t.Fatalf("GetBySeq: err=%v", err)
	}
	if reloaded.Comment != "edited" {
		t.Fatalf("reloaded comment: want %q got %q", "edited", reloaded.Comment)
	}
}
