package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"camusicgen/internal/automaton"
)

// Handler runs validated requests against the automaton engine. It holds no
// per-request state and is safe for concurrent use.
type Handler struct {
	log      zerolog.Logger
	metrics  *Metrics
	validate *validator.Validate
}

// NewHandler returns a Handler logging to log. metrics may be nil.
func NewHandler(log zerolog.Logger, metrics *Metrics) *Handler {
	v := validator.New()
	v.RegisterAlias("cawidth", fmt.Sprintf("gte=0,lte=%d", automaton.MaxWidth))
	v.RegisterAlias("seqlen", fmt.Sprintf("gte=0,lte=%d", MaxSequenceLength))
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		r := sl.Current().Interface().(InitRequest)
		checkWidth(sl, r.InitialState, r.Width, "InitialState")
	}, InitRequest{})
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		r := sl.Current().Interface().(StepRequest)
		checkWidth(sl, r.CurrentCells, r.Width, "CurrentCells")
	}, StepRequest{})
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		r := sl.Current().Interface().(GenerateRequest)
		checkWidth(sl, r.InitialCells, r.Width, "InitialCells")
	}, GenerateRequest{})
	return &Handler{log: log, metrics: metrics, validate: v}
}

// checkWidth reports cell arrays whose length disagrees with the declared width.
func checkWidth(sl validator.StructLevel, cells automaton.Generation, width int, field string) {
	if len(cells) != width {
		sl.ReportError(cells, field, field, "eqwidth", fmt.Sprint(width))
	}
}

// Handle validates req and runs it. Rejected requests produce no output. The
// returned response carries req's ID, or a fresh UUID when it has none.
func (h *Handler) Handle(ctx context.Context, req Request) (any, error) {
	start := time.Now()
	resp, gens, err := h.handle(ctx, req)
	var kind MessageType
	if req != nil {
		kind = req.Kind()
	}
	h.metrics.record(kind, err, gens, time.Since(start))
	return resp, err
}

func (h *Handler) handle(ctx context.Context, req Request) (any, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if req == nil {
		return nil, 0, fmt.Errorf("%w: nil request", ErrInvalidRequest)
	}
	if err := h.validate.Struct(req); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	id := req.RequestID()
	if id == "" {
		id = uuid.NewString()
	}

	switch r := req.(type) {
	case InitRequest:
		v, err := automaton.Encode(r.InitialState)
		if err != nil {
			return nil, 0, err
		}
		h.log.Debug().Str("id", id).Int("width", r.Width).Uint64("value", v).Msg("initialized")
		return InitResponse{Type: TypeInitialized, ID: id, CurrentCells: Bits(r.InitialState.Clone()), CurrentInteger: v}, 0, nil
	case StepRequest:
		next := automaton.Step(r.CurrentCells, r.Ruleset)
		v, err := automaton.Encode(next)
		if err != nil {
			return nil, 0, err
		}
		h.log.Debug().Str("id", id).Int("rule", r.Ruleset).Uint64("value", v).Msg("stepped")
		return StepResponse{Type: TypeStepped, ID: id, NextCells: Bits(next), NextInteger: v}, 1, nil
	case GenerateRequest:
		seq, err := automaton.Generate(r.InitialCells, r.Ruleset, r.SequenceLength)
		if err != nil {
			return nil, 0, err
		}
		h.log.Debug().Str("id", id).Int("rule", r.Ruleset).Int("length", r.SequenceLength).Msg("generated")
		gens := r.SequenceLength - 1
		if gens < 0 {
			gens = 0
		}
		return NewGenerateResponse(id, seq), gens, nil
	default:
		return nil, 0, fmt.Errorf("%w %T", ErrUnknownType, req)
	}
}

// HandleMessage decodes and handles one raw message. Failures are folded into
// an ErrorResponse so the caller always has something to send back.
func (h *Handler) HandleMessage(ctx context.Context, raw []byte) any {
	req, err := Decode(raw)
	if err != nil {
		h.metrics.record("", err, 0, 0)
		h.log.Warn().Err(err).Msg("rejected message")
		return ErrorResponse{Type: TypeError, ID: idOf(raw), Error: err.Error()}
	}
	resp, err := h.Handle(ctx, req)
	if err != nil {
		h.log.Warn().Err(err).Str("id", req.RequestID()).Str("type", string(req.Kind())).Msg("request failed")
		return ErrorResponse{Type: TypeError, ID: req.RequestID(), Error: err.Error()}
	}
	return resp
}
