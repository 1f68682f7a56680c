package worker

import (
	"fmt"
	"math"
	"strconv"

	"github.com/tidwall/gjson"

	"camusicgen/internal/automaton"
)

// Decode parses one JSON message into a typed request. Field presence and
// types are checked here; value ranges are left to the handler's validator.
//
// Cell arrays may be JSON arrays or the index-keyed objects produced when a
// typed array is stringified directly ({"0":1,"1":0}).
func Decode(raw []byte) (Request, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: expected an object", ErrMalformed)
	}
	id := doc.Get("id").String()

	kind := doc.Get("type").String()
	switch MessageType(kind) {
	case TypeInit:
		var r InitRequest
		var err error
		r.ID = id
		if r.Width, err = intField(doc, "width"); err != nil {
			return nil, err
		}
		if r.Ruleset, err = ruleField(doc, "ruleset"); err != nil {
			return nil, err
		}
		if r.InitialState, err = cellsField(doc, "initialState"); err != nil {
			return nil, err
		}
		return r, nil
	case TypeStep:
		var r StepRequest
		var err error
		r.ID = id
		if r.CurrentCells, err = cellsField(doc, "currentCells"); err != nil {
			return nil, err
		}
		if r.Width, err = intField(doc, "width"); err != nil {
			return nil, err
		}
		if r.Ruleset, err = ruleField(doc, "ruleset"); err != nil {
			return nil, err
		}
		return r, nil
	case TypeGenerate:
		var r GenerateRequest
		var err error
		r.ID = id
		if r.InitialCells, err = cellsField(doc, "initialCells"); err != nil {
			return nil, err
		}
		if r.Width, err = intField(doc, "width"); err != nil {
			return nil, err
		}
		if r.Ruleset, err = ruleField(doc, "ruleset"); err != nil {
			return nil, err
		}
		if r.SequenceLength, err = intField(doc, "sequenceLength"); err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownType, kind)
	}
}

func intField(doc gjson.Result, key string) (int, error) {
	v := doc.Get(key)
	if !v.Exists() {
		return 0, fmt.Errorf("%w: missing %s", ErrMalformed, key)
	}
	if v.Type != gjson.Number {
		return 0, fmt.Errorf("%w: %s must be a number", ErrMalformed, key)
	}
	if v.Num != math.Trunc(v.Num) || math.Abs(v.Num) > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %s must be an integer", ErrMalformed, key)
	}
	return int(v.Int()), nil
}

// ruleField accepts any integral number and keeps its low byte, the only
// part of a rule the engine reads.
func ruleField(doc gjson.Result, key string) (int, error) {
	v := doc.Get(key)
	if !v.Exists() {
		return 0, fmt.Errorf("%w: missing %s", ErrMalformed, key)
	}
	if v.Type != gjson.Number || v.Num != math.Trunc(v.Num) || math.IsInf(v.Num, 0) {
		return 0, fmt.Errorf("%w: %s must be an integer", ErrMalformed, key)
	}
	if n, err := strconv.ParseInt(v.Raw, 10, 64); err == nil {
		return int(n & 0xff), nil
	}
	low := math.Mod(v.Num, 256)
	if low < 0 {
		low += 256
	}
	return int(low), nil
}

func cellsField(doc gjson.Result, key string) (automaton.Generation, error) {
	v := doc.Get(key)
	if !v.Exists() {
		return nil, fmt.Errorf("%w: missing %s", ErrMalformed, key)
	}
	var elems []gjson.Result
	switch {
	case v.IsArray():
		elems = v.Array()
	case v.IsObject():
		n := 0
		v.ForEach(func(_, _ gjson.Result) bool { n++; return true })
		elems = make([]gjson.Result, n)
		for i := range elems {
			elems[i] = v.Get(strconv.Itoa(i))
			if !elems[i].Exists() {
				return nil, fmt.Errorf("%w: %s is missing index %d", ErrMalformed, key, i)
			}
		}
	default:
		return nil, fmt.Errorf("%w: %s must be an array", ErrMalformed, key)
	}
	g := make(automaton.Generation, len(elems))
	for i, e := range elems {
		if e.Type != gjson.Number || (e.Num != 0 && e.Num != 1) {
			return nil, fmt.Errorf("%w: %s[%d] must be 0 or 1, got %s", ErrMalformed, key, i, e.Raw)
		}
		g[i] = uint8(e.Num)
	}
	return g, nil
}

// idOf extracts a correlation id from a message that failed to decode.
func idOf(raw []byte) string {
	if !gjson.ValidBytes(raw) {
		return ""
	}
	return gjson.GetBytes(raw, "id").String()
}
