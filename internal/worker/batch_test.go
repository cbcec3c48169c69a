package worker

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ppiankov/pensionfacts/internal/model"
)

// mockProcessor sleeps a random few milliseconds so results finish out of order
type mockProcessor struct {
	fail  string
	calls int32
}

func (m *mockProcessor) Process(ctx context.Context, doc model.Document) (*model.DocumentReport, error) {
	atomic.AddInt32(&m.calls, 1)
	time.Sleep(time.Duration(rand.Intn(5)) * time.Millisecond)
	if doc.NAID == m.fail {
		return nil, errors.New("process error")
	}
	return &model.DocumentReport{NAID: doc.NAID}, nil
}

func docs(n int) []model.Document {
	out := make([]model.Document, n)
	for i := range out {
		out[i] = model.Document{NAID: strconv.Itoa(i)}
	}
	return out
}

func TestBatchProcessor_PreservesOrder(t *testing.T) {
	proc := &mockProcessor{}
	b := NewBatchProcessor(proc, 8, 0, 0)

	results := b.ProcessDocuments(context.Background(), docs(50))
	if len(results) != 50 {
		t.Fatalf("expected 50 results, got %d", len(results))
	}
	for i, r := range results {
		if r.Index != i || r.NAID != strconv.Itoa(i) {
			t.Errorf("result %d out of order: index %d naid %s", i, r.Index, r.NAID)
		}
		if r.Error != nil || r.Report == nil {
			t.Errorf("result %d: unexpected error %v", i, r.Error)
		}
	}
}

func TestBatchProcessor_Errors(t *testing.T) {
	proc := &mockProcessor{fail: "2"}
	b := NewBatchProcessor(proc, 2, 0, 0)

	results := b.ProcessDocuments(context.Background(), docs(4))
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	if results[2].GetError() == nil || results[2].Report != nil {
		t.Error("expected failure for document 2")
	}
	for _, i := range []int{0, 1, 3} {
		if results[i].GetError() != nil {
			t.Errorf("unexpected error for document %d: %v", i, results[i].Error)
		}
	}
}

func TestBatchProcessor_Empty(t *testing.T) {
	b := NewBatchProcessor(&mockProcessor{}, 2, 0, 0)
	if results := b.ProcessDocuments(context.Background(), nil); len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

func TestBatchProcessor_ReadError(t *testing.T) {
	b := NewBatchProcessor(&mockProcessor{}, 2, 0, 0)
	readErr := errors.New("bad line")

	n := 0
	next := func() (model.Document, error) {
		if n == 3 {
			return model.Document{}, readErr
		}
		n++
		return model.Document{NAID: strconv.Itoa(n - 1)}, nil
	}

	var emitted []string
	err := b.Stream(context.Background(), next, func(r *DocumentResult) error {
		emitted = append(emitted, r.NAID)
		return nil
	})

	if !errors.Is(err, readErr) {
		t.Fatalf("expected read error, got %v", err)
	}
	if len(emitted) != 3 || emitted[0] != "0" || emitted[2] != "2" {
		t.Errorf("expected rows before the error to be emitted in order, got %v", emitted)
	}
}

func TestBatchProcessor_EmitError(t *testing.T) {
	b := NewBatchProcessor(&mockProcessor{}, 2, 0, 0)
	all := docs(100)
	i := 0
	next := func() (model.Document, error) {
		if i >= len(all) {
			return model.Document{}, io.EOF
		}
		i++
		return all[i-1], nil
	}

	stop := errors.New("disk full")
	emitted := 0
	err := b.Stream(context.Background(), next, func(r *DocumentResult) error {
		emitted++
		if emitted == 5 {
			return stop
		}
		return nil
	})

	if !errors.Is(err, stop) {
		t.Fatalf("expected emit error, got %v", err)
	}
	if emitted != 5 {
		t.Errorf("expected emitting to stop at 5, got %d", emitted)
	}
}

func TestBatchProcessor_RateLimited(t *testing.T) {
	b := NewBatchProcessor(&mockProcessor{}, 4, 50, 1)

	start := time.Now()
	results := b.ProcessDocuments(context.Background(), docs(6))
	elapsed := time.Since(start)

	if len(results) != 6 {
		t.Fatalf("expected 6 results, got %d", len(results))
	}
	// 6 rows at 50/s with burst 1 need at least five 20ms intervals
	if elapsed < 80*time.Millisecond {
		t.Errorf("expected limiter to slow the batch, took %v", elapsed)
	}
}
