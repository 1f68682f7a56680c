package worker

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"camusicgen/internal/automaton"
)

func newTestHandler(t *testing.T) (*Handler, *Metrics) {
	t.Helper()
	m := NewMetrics(prometheus.NewRegistry())
	return NewHandler(zerolog.Nop(), m), m
}

func TestHandleInit(t *testing.T) {
	h, _ := newTestHandler(t)
	resp, err := h.Handle(context.Background(), InitRequest{ID: "x", Width: 5, Ruleset: 90, InitialState: automaton.Generation{1, 0, 1, 0, 0}})
	require.NoError(t, err)
	assert.Equal(t, InitResponse{Type: TypeInitialized, ID: "x", CurrentCells: Bits{1, 0, 1, 0, 0}, CurrentInteger: 5}, resp)
}

func TestHandleStep(t *testing.T) {
	h, m := newTestHandler(t)
	resp, err := h.Handle(context.Background(), StepRequest{ID: "s", CurrentCells: automaton.Generation{0, 0, 1, 0, 0}, Width: 5, Ruleset: 90})
	require.NoError(t, err)
	assert.Equal(t, StepResponse{Type: TypeStepped, ID: "s", NextCells: Bits{0, 1, 0, 1, 0}, NextInteger: 10}, resp)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("step", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GenerationsTotal))
}

func TestHandleGenerate(t *testing.T) {
	h, m := newTestHandler(t)
	resp, err := h.Handle(context.Background(), GenerateRequest{
		ID: "g", InitialCells: automaton.Generation{0, 0, 0, 1, 0}, Width: 5, Ruleset: 90, SequenceLength: 3,
	})
	require.NoError(t, err)
	gen := resp.(GenerateResponse)
	assert.Equal(t, []uint64{8, 20, 2}, gen.GeneratedIntegers)
	assert.Equal(t, []Bits{{0, 0, 0, 1, 0}, {0, 0, 1, 0, 1}, {0, 1, 0, 0, 0}}, gen.GeneratedStates)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.GenerationsTotal))
}

func TestHandleGenerateZeroLength(t *testing.T) {
	h, _ := newTestHandler(t)
	resp, err := h.Handle(context.Background(), GenerateRequest{InitialCells: automaton.Generation{1}, Width: 1, Ruleset: 90})
	require.NoError(t, err)

	b, err := json.Marshal(resp)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, []any{}, decoded["generatedIntegers"])
	assert.Equal(t, []any{}, decoded["generatedStates"])
}

func TestHandleAssignsID(t *testing.T) {
	h, _ := newTestHandler(t)
	resp, err := h.Handle(context.Background(), InitRequest{Width: 1, InitialState: automaton.Generation{1}})
	require.NoError(t, err)
	_, err = uuid.Parse(resp.(InitResponse).ID)
	assert.NoError(t, err)
}

func TestHandleRejectsInvalid(t *testing.T) {
	h, m := newTestHandler(t)
	ctx := context.Background()
	tests := []struct {
		name string
		req  Request
	}{
		{"width mismatch", StepRequest{CurrentCells: automaton.Generation{0, 1}, Width: 3, Ruleset: 90}},
		{"negative width", InitRequest{Width: -1}},
		{"too wide", GenerateRequest{InitialCells: make(automaton.Generation, 65), Width: 65, SequenceLength: 1}},
		{"negative length", GenerateRequest{InitialCells: automaton.Generation{1}, Width: 1, SequenceLength: -2}},
		{"too long", GenerateRequest{InitialCells: automaton.Generation{1}, Width: 1, SequenceLength: MaxSequenceLength + 1}},
		{"non binary cell", InitRequest{Width: 2, InitialState: automaton.Generation{0, 7}}},
		{"nil", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := h.Handle(ctx, tt.req)
			assert.ErrorIs(t, err, ErrInvalidRequest)
			assert.Nil(t, resp)
		})
	}
	assert.Equal(t, 3.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("generate", "error")))
}

func TestHandleLimitsFollowEngine(t *testing.T) {
	h, _ := newTestHandler(t)
	ctx := context.Background()

	_, err := h.Handle(ctx, InitRequest{Width: automaton.MaxWidth, InitialState: make(automaton.Generation, automaton.MaxWidth)})
	require.NoError(t, err)

	resp, err := h.Handle(ctx, GenerateRequest{InitialCells: automaton.Generation{1}, Width: 1, Ruleset: 90, SequenceLength: MaxSequenceLength})
	require.NoError(t, err)
	assert.Len(t, resp.(GenerateResponse).GeneratedIntegers, MaxSequenceLength)
}

func TestHandleRuleOutsideByteIsAccepted(t *testing.T) {
	h, _ := newTestHandler(t)
	cells := automaton.Generation{0, 0, 1, 0, 0}
	a, err := h.Handle(context.Background(), StepRequest{ID: "a", CurrentCells: cells, Width: 5, Ruleset: 90})
	require.NoError(t, err)
	b, err := h.Handle(context.Background(), StepRequest{ID: "a", CurrentCells: cells, Width: 5, Ruleset: 90 + 512})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestHandleCancelled(t *testing.T) {
	h, _ := newTestHandler(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := h.Handle(ctx, InitRequest{Width: 1, InitialState: automaton.Generation{1}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHandleMessage(t *testing.T) {
	h, m := newTestHandler(t)
	ctx := context.Background()

	resp := h.HandleMessage(ctx, []byte(`{"type":"step","id":"7","currentCells":[0,0,1,0,0],"width":5,"ruleset":90}`))
	assert.Equal(t, StepResponse{Type: TypeStepped, ID: "7", NextCells: Bits{0, 1, 0, 1, 0}, NextInteger: 10}, resp)

	resp = h.HandleMessage(ctx, []byte(`{"type":"step","id":"8","currentCells":[0,1],"width":5,"ruleset":90}`))
	errResp, ok := resp.(ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, "8", errResp.ID)
	assert.Equal(t, TypeError, errResp.Type)

	resp = h.HandleMessage(ctx, []byte(`{"type":"bogus","id":"9"}`))
	errResp, ok = resp.(ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, "9", errResp.ID)
	assert.Contains(t, errResp.Error, "unknown message type")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("unknown", "error")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	h := NewHandler(zerolog.Nop(), nil)
	_, err := h.Handle(context.Background(), InitRequest{Width: 1, InitialState: automaton.Generation{0}})
	assert.NoError(t, err)
}
