package writers

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"camusicgen/internal/automaton"
	"camusicgen/internal/worker"
)

func init() {
	Register("json", writeJSON)
	Register("csv", writeCSV)
}

// writeJSON emits the same shape the worker sends for a generate request.
func writeJSON(w io.Writer, seq automaton.Sequence) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	resp := worker.NewGenerateResponse("", seq)
	return enc.Encode(resp)
}

func writeCSV(w io.Writer, seq automaton.Sequence) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"step", "integer", "cells"}); err != nil {
		return err
	}
	for k, state := range seq.States {
		rec := []string{strconv.Itoa(k), strconv.FormatUint(seq.Integers[k], 10), state.String()}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
