package httpapi

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/hanool/timekeeper/internal/service/allocator"
	"github.com/hanool/timekeeper/pkg/clockdto"
)

// Server exposes the allocator over a small JSON API:
//
//	POST   /v1/allocate        per-move budget
//	POST   /v1/sessions        start a game session
//	GET    /v1/sessions/{id}   describe a session
//	DELETE /v1/sessions/{id}   end a session
//	GET    /healthz
type Server struct {
	svc *allocator.Service
	log *zap.Logger
}

func NewServer(svc *allocator.Service, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{svc: svc, log: log}
}

func (s *Server) Handler() fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		path := string(ctx.Path())
		method := string(ctx.Method())

		switch {
		case method == fasthttp.MethodGet && path == "/healthz":
			writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
		case method == fasthttp.MethodPost && path == "/v1/allocate":
			s.handleAllocate(ctx)
		case method == fasthttp.MethodPost && path == "/v1/sessions":
			s.handleCreateSession(ctx)
		case strings.HasPrefix(path, "/v1/sessions/"):
			id := strings.TrimPrefix(path, "/v1/sessions/")
			switch method {
			case fasthttp.MethodGet:
				s.handleGetSession(ctx, id)
			case fasthttp.MethodDelete:
				s.handleDeleteSession(ctx, id)
			default:
				writeError(ctx, fasthttp.StatusMethodNotAllowed, clockdto.DomainError{Code: clockdto.CodeBadRequest, Message: "method not allowed"})
			}
		default:
			writeError(ctx, fasthttp.StatusNotFound, clockdto.DomainError{Code: clockdto.CodeBadRequest, Message: "no such route"})
		}
	}
}

func (s *Server) handleAllocate(ctx *fasthttp.RequestCtx) {
	var req clockdto.AllocateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, clockdto.DomainError{Code: clockdto.CodeBadRequest, Message: "invalid json: " + err.Error()})
		return
	}

	out, err := s.svc.Allocate(ctx, &req)
	if err != nil {
		s.writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, out)
}

func (s *Server) handleCreateSession(ctx *fasthttp.RequestCtx) {
	info, err := s.svc.CreateSession(ctx)
	if err != nil {
		s.writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusCreated, info)
}

func (s *Server) handleGetSession(ctx *fasthttp.RequestCtx, id string) {
	info, err := s.svc.GetSession(ctx, id)
	if err != nil {
		s.writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, info)
}

func (s *Server) handleDeleteSession(ctx *fasthttp.RequestCtx, id string) {
	if err := s.svc.DeleteSession(ctx, id); err != nil {
		s.writeServiceError(ctx, err)
		return
	}
	ctx.SetStatusCode(fasthttp.StatusNoContent)
}

func (s *Server) writeServiceError(ctx *fasthttp.RequestCtx, err error) {
	var derr clockdto.DomainError
	if errors.As(err, &derr) {
		writeError(ctx, statusFor(derr.Code), derr)
		return
	}
	s.log.Error("request failed", zap.String("path", string(ctx.Path())), zap.Error(err))
	writeError(ctx, fasthttp.StatusInternalServerError, clockdto.DomainError{Code: clockdto.CodeInternal, Message: "internal error"})
}

func statusFor(code string) int {
	switch code {
	case clockdto.CodeSessionNotFound:
		return fasthttp.StatusNotFound
	case clockdto.CodeBadRequest, clockdto.CodeUnknownPreset, clockdto.CodeInvalidPosition:
		return fasthttp.StatusBadRequest
	default:
		return fasthttp.StatusInternalServerError
	}
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json; charset=utf-8")
	if err := json.NewEncoder(ctx).Encode(v); err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
	}
}

func writeError(ctx *fasthttp.RequestCtx, status int, derr clockdto.DomainError) {
	writeJSON(ctx, status, map[string]clockdto.DomainError{"error": derr})
}
