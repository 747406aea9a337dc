// Package wire exchanges token streams with an external host over msgpack.
//
// The host writes a sequence of Requests, each holding the attribute's
// condition tokens and the annotated item's tokens. Every request is answered
// with one Response carrying either the replacement tokens or an error.
package wire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/ecordell/pubif/gate"
	"github.com/ecordell/pubif/internal/token"
)

// Request asks for one expansion.
type Request struct {
	Condition token.Stream `msgpack:"condition"`
	Item      token.Stream `msgpack:"item"`
}

// Response answers one Request. Exactly one of Tokens and Error is set.
type Response struct {
	Tokens token.Stream `msgpack:"tokens,omitempty"`
	Error  string       `msgpack:"error,omitempty"`
	Span   token.Span   `msgpack:"span,omitempty"`
}

// Handle expands a single request.
func Handle(req Request, opts ...gate.Option) Response {
	out, err := gate.Expand(req.Condition, req.Item, opts...)
	if err != nil {
		resp := Response{Error: err.Error()}
		var gerr *gate.Error
		if errors.As(err, &gerr) {
			resp.Span = gerr.Span
		}
		return resp
	}
	return Response{Tokens: out}
}

// Serve answers requests read from r until r is exhausted or ctx is done.
func Serve(ctx context.Context, r io.Reader, w io.Writer, logger *slog.Logger, opts ...gate.Option) error {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	dec := msgpack.NewDecoder(r)
	enc := msgpack.NewEncoder(w)

	for n := 0; ; n++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		var req Request
		if err := dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				logger.Debug("wire closed", "requests", n)
				return nil
			}
			return fmt.Errorf("decode request %d: %w", n, err)
		}

		resp := Handle(req, opts...)
		if resp.Error != "" {
			logger.Debug("expansion failed", "request", n, "error", resp.Error)
		}
		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("encode response %d: %w", n, err)
		}
	}
}
