package worker

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"camusicgen/internal/automaton"
)

func TestBatchPreservesOrder(t *testing.T) {
	p := NewPool(NewHandler(zerolog.Nop(), nil), 4)
	var reqs []Request
	for rule := 0; rule < 32; rule++ {
		reqs = append(reqs, GenerateRequest{
			ID: fmt.Sprint(rule), InitialCells: automaton.Generation{0, 0, 1, 0, 0}, Width: 5, Ruleset: rule, SequenceLength: 8,
		})
	}
	reqs = append(reqs, StepRequest{ID: "bad", CurrentCells: automaton.Generation{1}, Width: 2})

	out, err := p.Batch(context.Background(), reqs)
	require.NoError(t, err)
	require.Len(t, out, len(reqs))
	for rule := 0; rule < 32; rule++ {
		want, err := automaton.GenerateIntegers(automaton.Generation{0, 0, 1, 0, 0}, rule, 8)
		require.NoError(t, err)
		got := out[rule].(GenerateResponse)
		assert.Equal(t, fmt.Sprint(rule), got.ID)
		assert.Equal(t, want, got.GeneratedIntegers)
	}
	errResp := out[32].(ErrorResponse)
	assert.Equal(t, "bad", errResp.ID)
}

func TestBatchCancelled(t *testing.T) {
	p := NewPool(NewHandler(zerolog.Nop(), nil), 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Batch(ctx, []Request{InitRequest{Width: 1, InitialState: automaton.Generation{1}}})
	assert.ErrorIs(t, err, context.Canceled)
}

func readLines(t *testing.T, out *bytes.Buffer) []map[string]any {
	t.Helper()
	var msgs []map[string]any
	sc := bufio.NewScanner(out)
	sc.Buffer(make([]byte, 0, 64*1024), 16<<20)
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		msgs = append(msgs, m)
	}
	require.NoError(t, sc.Err())
	return msgs
}

func TestServe(t *testing.T) {
	p := NewPool(NewHandler(zerolog.Nop(), nil), 3)
	in := strings.Join([]string{
		`{"type":"init","id":"1","width":5,"ruleset":90,"initialState":[1,0,1,0,0]}`,
		``,
		`{"type":"step","id":"2","currentCells":[0,0,1,0,0],"width":5,"ruleset":90}`,
		`{"type":"generate","id":"3","initialCells":[0,0,0,1,0],"width":5,"ruleset":90,"sequenceLength":3}`,
		`not json`,
	}, "\n")

	var out bytes.Buffer
	require.NoError(t, p.Serve(context.Background(), strings.NewReader(in), &out))

	msgs := readLines(t, &out)
	require.Len(t, msgs, 4)
	types := make([]any, len(msgs))
	for i, m := range msgs {
		types[i] = m["type"]
	}
	assert.Equal(t, []any{"initialized", "stepped", "generated", "error"}, types)

	assert.Equal(t, "1", msgs[0]["id"])
	assert.EqualValues(t, 5, msgs[0]["currentInteger"])
	assert.Equal(t, []any{0.0, 1.0, 0.0, 1.0, 0.0}, msgs[1]["nextCells"])
	assert.EqualValues(t, 10, msgs[1]["nextInteger"])
	assert.Equal(t, []any{8.0, 20.0, 2.0}, msgs[2]["generatedIntegers"])
	assert.Len(t, msgs[2]["generatedStates"], 3)
	assert.Contains(t, msgs[3]["error"], "malformed")
}

func TestServeRepliesInInputOrder(t *testing.T) {
	p := NewPool(NewHandler(zerolog.Nop(), nil), 4)
	const slowLength = 4096
	wide := "[" + strings.Repeat("0,", automaton.MaxWidth-1) + "1]"
	lines := []string{
		fmt.Sprintf(`{"type":"generate","initialCells":%s,"width":%d,"ruleset":30,"sequenceLength":%d}`, wide, automaton.MaxWidth, slowLength),
	}
	for i := 0; i < 16; i++ {
		lines = append(lines, fmt.Sprintf(`{"type":"init","width":1,"ruleset":90,"initialState":[%d]}`, i%2))
	}

	var out bytes.Buffer
	require.NoError(t, p.Serve(context.Background(), strings.NewReader(strings.Join(lines, "\n")), &out))

	msgs := readLines(t, &out)
	require.Len(t, msgs, len(lines))
	assert.Equal(t, "generated", msgs[0]["type"])
	assert.Len(t, msgs[0]["generatedIntegers"], slowLength)
	for i, m := range msgs[1:] {
		assert.Equal(t, "initialized", m["type"], "reply %d", i+1)
		assert.EqualValues(t, i%2, m["currentInteger"], "reply %d", i+1)
	}
}

func TestServeStopsOnCancelWhileIdle(t *testing.T) {
	p := NewPool(NewHandler(zerolog.Nop(), nil), 2)
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Serve(ctx, pr, io.Discard) }()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Serve kept running after its context was cancelled")
	}
}

func TestServeAnswersBeforeCancel(t *testing.T) {
	p := NewPool(NewHandler(zerolog.Nop(), nil), 2)
	pr, pw := io.Pipe()
	defer pw.Close()
	outR, outW := io.Pipe()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Serve(ctx, pr, outW) }()

	_, err := io.WriteString(pw, `{"type":"step","id":"s","currentCells":[0,0,1,0,0],"width":5,"ruleset":90}`+"\n")
	require.NoError(t, err)
	line, err := bufio.NewReader(outR).ReadBytes('\n')
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(line, &m))
	assert.Equal(t, "s", m["id"])
	assert.EqualValues(t, 10, m["nextInteger"])

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Serve kept running after its context was cancelled")
	}
}

func TestNewPoolDefaultsLimit(t *testing.T) {
	p := NewPool(NewHandler(zerolog.Nop(), nil), 0)
	assert.Positive(t, p.limit)
}
