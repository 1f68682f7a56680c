package writers

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"camusicgen/internal/automaton"
	"camusicgen/internal/render"
)

func init() {
	Register("ints", writeInts)
	Register("lines", writeLines)
	Register("grid", writeGrid)
}

// writeInts prints the integers space separated on a single line, ready to
// paste into a sequencer.
func writeInts(w io.Writer, seq automaton.Sequence) error {
	bw := bufio.NewWriter(w)
	var buf []byte
	for i, v := range seq.Integers {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = strconv.AppendUint(buf, v, 10)
	}
	buf = append(buf, '\n')
	if _, err := bw.Write(buf); err != nil {
		return err
	}
	return bw.Flush()
}

func writeLines(w io.Writer, seq automaton.Sequence) error {
	bw := bufio.NewWriter(w)
	for _, v := range seq.Integers {
		if _, err := fmt.Fprintln(bw, v); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// writeGrid draws the spacetime diagram with each row's integer alongside.
func writeGrid(w io.Writer, seq automaton.Sequence) error {
	bw := bufio.NewWriter(w)
	for k, state := range seq.States {
		row := render.TextRow(state, '#', '.')
		if _, err := fmt.Fprintf(bw, "%4d  %s  %d\n", k, row, seq.Integers[k]); err != nil {
			return err
		}
	}
	return bw.Flush()
}
