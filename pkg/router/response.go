package router

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/voluntree-lab/backend/pkg/errorx"
	"github.com/voluntree-lab/backend/pkg/xcontext"
)

type response struct {
	Code  int64  `json:"code"`
	Kind  string `json:"kind,omitempty"`
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}

func newResponse(data any) response {
	return response{
		Code: 0,
		Data: data,
	}
}

func newErrorResponse(err error) response {
	errx := errorx.Error{}
	if errors.As(err, &errx) {
		return response{
			Code:  int64(errx.Code),
			Kind:  errx.Kind,
			Error: errx.Message,
		}
	}

	return response{
		Code:  int64(errorx.Unknown.Code),
		Kind:  errorx.Unknown.Kind,
		Error: errorx.Unknown.Message,
	}
}

// requestState is shared by every context derived from the request, so
// middlewares and closers observe the handler outcome.
type requestState struct {
	resp any
	err  error
}

type requestStateKey struct{}

func withRequestState(ctx context.Context) context.Context {
	return context.WithValue(ctx, requestStateKey{}, &requestState{})
}

func state(ctx context.Context) *requestState {
	return ctx.Value(requestStateKey{}).(*requestState)
}

func setError(ctx context.Context, err error) {
	state(ctx).err = err
}

func setResponse(ctx context.Context, resp any) {
	state(ctx).resp = resp
}

// Error returns the error recorded for this request, if any. Intended for
// After middlewares and closers.
func Error(ctx context.Context) error {
	return state(ctx).err
}

// Response returns the response object recorded for this request, if any.
func Response(ctx context.Context) any {
	return state(ctx).resp
}

func writeResult(ctx context.Context) {
	s := state(ctx)
	if s.err != nil {
		writeError(ctx)
		return
	}

	if s.resp == nil {
		// The handler wrote to the connection itself (redirect, upgrade).
		return
	}

	if err := WriteJson(xcontext.HTTPWriter(ctx), newResponse(s.resp)); err != nil {
		xcontext.Logger(ctx).Errorf("cannot write the response: %v", err)
	}
}

func writeError(ctx context.Context) {
	err := state(ctx).err
	if err == nil {
		err = errorx.Unknown
	}

	if werr := WriteJson(xcontext.HTTPWriter(ctx), newErrorResponse(err)); werr != nil {
		xcontext.Logger(ctx).Errorf("cannot write the response: %v", werr)
	}
}

func WriteJson(w http.ResponseWriter, resp any) error {
	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(b); err != nil {
		return err
	}

	return nil
}

func decodeBody(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return errorx.New(errorx.BadRequest, "Cannot decode the request body")
	}

	return nil
}
