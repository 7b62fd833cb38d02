package router

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/blindbox-labs/backend/pkg/errorx"
	"github.com/blindbox-labs/backend/pkg/xcontext"
)

type routeStateKey struct{}

type routeState struct {
	err error
}

// Error returns the error the current request finished with, if any. It is
// only meaningful inside closers.
func Error(ctx context.Context) error {
	state, ok := ctx.Value(routeStateKey{}).(*routeState)
	if !ok {
		return nil
	}

	return state.err
}

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		state := &routeState{}
		ctx := context.WithValue(router.baseCtx, routeStateKey{}, state)
		ctx = xcontext.WithHTTPRequest(ctx, req)
		ctx = xcontext.WithHTTPWriter(ctx, w)

		defer func() {
			for _, closer := range router.closers {
				closer(ctx)
			}
		}()

		resp, err := func() (*Response, error) {
			for _, middleware := range router.befores {
				newCtx, err := middleware(ctx)
				if err != nil {
					return nil, err
				}

				if newCtx != nil {
					ctx = newCtx
				}
			}

			// Preflight requests stop after the before chain; the CORS
			// middleware has already written its headers.
			if req.Method == http.MethodOptions {
				return nil, nil
			}

			if req.Method != method {
				return nil, errorx.New(errorx.BadRequest, "Not supported method %s", req.Method)
			}

			request, err := bindRequest[Request](req)
			if err != nil {
				return nil, errorx.New(errorx.BadRequest, "Cannot parse the request")
			}

			resp, err := handler(ctx, request)
			if err != nil {
				return nil, err
			}

			for _, middleware := range router.afters {
				newCtx, err := middleware(ctx)
				if err != nil {
					return nil, err
				}

				if newCtx != nil {
					ctx = newCtx
				}
			}

			return resp, nil
		}()

		state.err = err
		if err != nil {
			if writeErr := writeJSON(w, newErrorResponse(err)); writeErr != nil {
				xcontext.Logger(ctx).Errorf("Cannot write the error response: %v", writeErr)
			}
			return
		}

		if resp != nil {
			if writeErr := writeJSON(w, newResponse(resp)); writeErr != nil {
				xcontext.Logger(ctx).Errorf("Cannot write the response: %v", writeErr)
				state.err = errorx.New(errorx.BadResponse, "Cannot write the response")
			}
		}
	}
}

func bindRequest[Request any](req *http.Request) (*Request, error) {
	request := new(Request)
	switch req.Method {
	case http.MethodGet:
		if err := bindQuery(req.URL.Query(), request); err != nil {
			return nil, err
		}

	case http.MethodPost:
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}

		if len(body) > 0 {
			if err := json.Unmarshal(body, request); err != nil {
				return nil, err
			}
		}
	}

	return request, nil
}
