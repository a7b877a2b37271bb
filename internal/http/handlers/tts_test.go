package handlers

import (
	"errors"
	"testing"

	pkgerrors "github.com/voclab/voclab-backend/internal/pkg/errors"
	"github.com/voclab/voclab-backend/internal/services"
)

func TestDecodeBatchOps(t *testing.T) {
	seq := int64(3)
	items := []sentenceBatchItem{
		{Operation: "CREATE", Sentence: &services.SentenceRequest{Text: "a"}},
		{Operation: "UPDATE", TsSeq: &seq, Sentence: &services.SentenceRequest{Text: "b"}},
	}
	ops, err := decodeBatchOps(items)
	if err != nil {
		t.Fatalf("decodeBatchOps: err=%v", err)
	}
	if len(ops) != 2 {
		t.Fatalf("decodeBatchOps: want 2 ops got %d", len(ops))
	}
	if _, ok := ops[0].(services.CreateSentenceOp); !ok {
		t.Fatalf("first op: want CreateSentenceOp got %T", ops[0])
	}
	up, ok := ops[1].(services.UpdateSentenceOp)
	if !ok {
		t.Fatalf("second op: want UpdateSentenceOp got %T", ops[1])
	}
	if up.TsSeq != 3 {
		t.Fatalf("update target: want 3 got %d", up.TsSeq)
	}
}

func TestDecodeBatchOpsRejectsUnknownTag(t *testing.T) {
	_, err := decodeBatchOps([]sentenceBatchItem{{Operation: "UPSERT"}})
	if !errors.Is(err, pkgerrors.ErrInvalidInput) {
		t.Fatalf("unknown tag: want ErrInvalidInput got %v", err)
	}
}

func TestDecodeBatchOpsRequiresUpdateTarget(t *testing.T) {
	_, err := decodeBatchOps([]sentenceBatchItem{{Operation: "UPDATE", Sentence: &services.SentenceRequest{}}})
	if !errors.Is(err, pkgerrors.ErrInvalidInput) {
		t.Fatalf("missing ts_seq: want ErrInvalidInput got %v", err)
	}
}
