// Package worker is the message boundary around the automaton engine. It
// accepts the loosely typed init/step/generate messages produced by a host,
// validates them into typed requests, runs the engine and shapes the reply.
// Requests may be handled concurrently through a Pool.
package worker

import (
	"errors"
	"strconv"

	"camusicgen/internal/automaton"
)

// MessageType tags every request and response.
type MessageType string

const (
	// Request types.
	TypeInit     MessageType = "init"
	TypeStep     MessageType = "step"
	TypeGenerate MessageType = "generate"

	// Response types.
	TypeInitialized MessageType = "initialized"
	TypeStepped     MessageType = "stepped"
	TypeGenerated   MessageType = "generated"
	TypeError       MessageType = "error"
)

var (
	// ErrMalformed reports a payload that is not a JSON object.
	ErrMalformed = errors.New("worker: malformed message")
	// ErrUnknownType reports a message whose type is not init, step or generate.
	ErrUnknownType = errors.New("worker: unknown message type")
	// ErrInvalidRequest reports a request that failed field validation.
	ErrInvalidRequest = errors.New("worker: invalid request")
)

// MaxSequenceLength caps the generations a single generate message may ask
// for. Longer runs are split across several messages.
const MaxSequenceLength = 1 << 16

// Request is one of InitRequest, StepRequest or GenerateRequest.
type Request interface {
	Kind() MessageType
	RequestID() string
}

// InitRequest publishes an initial configuration.
type InitRequest struct {
	ID           string
	Width        int `validate:"cawidth"`
	Ruleset      int
	InitialState automaton.Generation `validate:"dive,lte=1"`
}

// StepRequest asks for the successor of CurrentCells.
type StepRequest struct {
	ID           string
	CurrentCells automaton.Generation `validate:"dive,lte=1"`
	Width        int                  `validate:"cawidth"`
	Ruleset      int
}

// GenerateRequest asks for SequenceLength generations starting at InitialCells.
type GenerateRequest struct {
	ID             string
	InitialCells   automaton.Generation `validate:"dive,lte=1"`
	Width          int                  `validate:"cawidth"`
	Ruleset        int
	SequenceLength int `validate:"seqlen"`
}

func (r InitRequest) Kind() MessageType { return TypeInit }
func (r InitRequest) RequestID() string { return r.ID }
func (r StepRequest) Kind() MessageType { return TypeStep }
func (r StepRequest) RequestID() string { return r.ID }
func (r GenerateRequest) Kind() MessageType { return TypeGenerate }
func (r GenerateRequest) RequestID() string { return r.ID }

// Bits is a generation that marshals as a JSON array of numbers instead of
// the base64 string encoding/json uses for byte slices.
type Bits []uint8

// MarshalJSON implements json.Marshaler.
func (b Bits) MarshalJSON() ([]byte, error) {
	out := make([]byte, 0, 2*len(b)+2)
	out = append(out, '[')
	for i, c := range b {
		if i > 0 {
			out = append(out, ',')
		}
		out = strconv.AppendUint(out, uint64(c), 10)
	}
	return append(out, ']'), nil
}

// InitResponse answers an InitRequest.
type InitResponse struct {
	Type           MessageType `json:"type"`
	ID             string      `json:"id,omitempty"`
	CurrentCells   Bits        `json:"currentCells"`
	CurrentInteger uint64      `json:"currentInteger"`
}

// StepResponse answers a StepRequest.
type StepResponse struct {
	Type        MessageType `json:"type"`
	ID          string      `json:"id,omitempty"`
	NextCells   Bits        `json:"nextCells"`
	NextInteger uint64      `json:"nextInteger"`
}

// GenerateResponse answers a GenerateRequest.
type GenerateResponse struct {
	Type              MessageType `json:"type"`
	ID                string      `json:"id,omitempty"`
	GeneratedIntegers []uint64    `json:"generatedIntegers"`
	GeneratedStates   []Bits      `json:"generatedStates"`
}

// ErrorResponse reports a rejected request. No partial output accompanies it.
type ErrorResponse struct {
	Type  MessageType `json:"type"`
	ID    string      `json:"id,omitempty"`
	Error string      `json:"error"`
}

// NewGenerateResponse shapes a sequence as a generated reply.
func NewGenerateResponse(id string, seq automaton.Sequence) GenerateResponse {
	states := make([]Bits, len(seq.States))
	for i, s := range seq.States {
		states[i] = Bits(s)
	}
	ints := seq.Integers
	if ints == nil {
		ints = []uint64{}
	}
	return GenerateResponse{Type: TypeGenerated, ID: id, GeneratedIntegers: ints, GeneratedStates: states}
}
