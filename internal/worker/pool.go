package worker

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// maxMessageBytes bounds a single newline-delimited message.
const maxMessageBytes = 1 << 20

// Pool runs requests on a bounded number of goroutines. The engine is
// stateless, so requests share nothing but the handler.
type Pool struct {
	handler *Handler
	limit   int
}

// NewPool returns a Pool running at most limit requests at once. A
// non-positive limit uses runtime.NumCPU.
func NewPool(h *Handler, limit int) *Pool {
	if limit <= 0 {
		limit = runtime.NumCPU()
	}
	return &Pool{handler: h, limit: limit}
}

// Batch handles every request and returns the responses in request order.
// A failed request yields an ErrorResponse in its slot; only cancellation of
// ctx aborts the batch.
func (p *Pool) Batch(ctx context.Context, reqs []Request) ([]any, error) {
	out := make([]any, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.limit)
	for i, req := range reqs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			resp, err := p.handler.Handle(gctx, req)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				var id string
				if req != nil {
					id = req.RequestID()
				}
				resp = ErrorResponse{Type: TypeError, ID: id, Error: err.Error()}
			}
			out[i] = resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Serve reads newline-delimited JSON messages from r and writes one JSON
// response line per message to w, in the order the messages arrived.
// Messages are handled concurrently; a finished response waits until every
// earlier one has been written. Serve returns when r is exhausted and all
// in-flight messages are answered, or when ctx is cancelled. Cancellation
// stops intake at once, even while r is blocked.
func (p *Pool) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.limit)

	lines := make(chan []byte)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64*1024), maxMessageBytes)
		for sc.Scan() {
			line := bytes.TrimSpace(sc.Bytes())
			if len(line) == 0 {
				continue
			}
			select {
			case lines <- append([]byte(nil), line...):
			case <-gctx.Done():
				readErr <- nil
				return
			}
		}
		readErr <- sc.Err()
	}()

	out := newOrderedWriter(w, p.limit*4)
intake:
	for seq := 0; ; seq++ {
		var msg []byte
		select {
		case <-gctx.Done():
			break intake
		case m, ok := <-lines:
			if !ok {
				break intake
			}
			msg = m
		}
		if !out.reserve(gctx) {
			break
		}
		g.Go(func() error {
			return out.put(seq, p.handler.HandleMessage(gctx, msg))
		})
	}
	werr := g.Wait()

	var rerr error
	select {
	case rerr = <-readErr:
	default:
	}
	if rerr != nil {
		return fmt.Errorf("read messages: %w", rerr)
	}
	if werr != nil {
		return werr
	}
	return ctx.Err()
}

// orderedWriter encodes responses in sequence order. At most window
// responses may be in flight or waiting behind a slower predecessor.
type orderedWriter struct {
	enc   *json.Encoder
	slots chan struct{}

	mu      sync.Mutex
	next    int
	pending map[int]any
}

func newOrderedWriter(w io.Writer, window int) *orderedWriter {
	return &orderedWriter{
		enc:     json.NewEncoder(w),
		slots:   make(chan struct{}, window),
		pending: make(map[int]any),
	}
}

// reserve blocks until the window has room. It reports false if ctx ends first.
func (o *orderedWriter) reserve(ctx context.Context) bool {
	select {
	case o.slots <- struct{}{}:
		return true
	case <-ctx.Done():
		return false
	}
}

// put records the response for seq and flushes every response that is now
// contiguous with the last one written.
func (o *orderedWriter) put(seq int, resp any) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.pending[seq] = resp
	for {
		r, ok := o.pending[o.next]
		if !ok {
			return nil
		}
		delete(o.pending, o.next)
		o.next++
		<-o.slots
		if err := o.enc.Encode(r); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
	}
}
