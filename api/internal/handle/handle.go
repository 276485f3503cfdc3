package handle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"text-decoder/api/internal/apperr"
	"text-decoder/api/internal/behavior"
	"text-decoder/api/internal/envelope"
	"text-decoder/api/internal/prompt"
	"text-decoder/api/internal/resolve"
	"text-decoder/api/internal/store"
)

// Invoker is the Model Invoker as seen by the handlers.
type Invoker interface {
	Invoke(ctx context.Context, id prompt.ID, rendered string) (string, error)
}

type Deps struct {
	Invoker      Invoker
	Library      *behavior.Library
	Recorder     store.Recorder
	Log          *zap.Logger
	Now          func() time.Time
	MaxBodyBytes int64
}

type Handle struct {
	inv     Invoker
	lib     *behavior.Library
	rec     store.Recorder
	log     *zap.Logger
	now     func() time.Time
	maxBody int64
}

const defaultMaxBody = 1 << 20

func New(d Deps) *Handle {
	h := &Handle{
		inv:     d.Invoker,
		lib:     d.Library,
		rec:     d.Recorder,
		log:     d.Log,
		now:     d.Now,
		maxBody: d.MaxBodyBytes,
	}
	if h.lib == nil {
		h.lib = behavior.Default(time.Now())
	}
	if h.rec == nil {
		h.rec = store.Nop{}
	}
	if h.log == nil {
		h.log = zap.NewNop()
	}
	if h.now == nil {
		h.now = time.Now
	}
	if h.maxBody <= 0 {
		h.maxBody = defaultMaxBody
	}
	return h
}

func (h *Handle) ok(w http.ResponseWriter, data any, message string) {
	envelope.WriteOK(w, h.now(), data, message)
}

// fail logs the classified error with its cause and writes the error envelope.
func (h *Handle) fail(w http.ResponseWriter, r *http.Request, err error) {
	ae := apperr.From(err)
	body, code := envelope.Fail(h.now(), ae)
	fields := []zap.Field{
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.String("path", r.URL.Path),
		zap.String("kind", string(ae.Kind)),
		zap.Int("status", code),
	}
	if ae.Err != nil {
		fields = append(fields, zap.Error(ae.Err))
	}
	if code >= http.StatusInternalServerError {
		h.log.Error("request failed", fields...)
	} else {
		h.log.Info("request rejected", fields...)
	}
	envelope.WriteJSON(w, code, body)
}

// body is a decoded JSON object with each member kept raw. A JSON null
// member counts as absent.
type body map[string]json.RawMessage

var errNotObject = apperr.New(apperr.InvalidInput, "Invalid JSON", "The request body must be a JSON object")

func (h *Handle) decode(w http.ResponseWriter, r *http.Request) (body, error) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBody))
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return nil, apperr.Wrap(apperr.InvalidInput, "Request too large",
				fmt.Sprintf("The request body must not exceed %d bytes", mbe.Limit), err)
		}
		return nil, apperr.Wrap(apperr.InvalidInput, "Invalid JSON", "The request body could not be read", err)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return body{}, nil
	}
	var b body
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, apperr.Wrap(errNotObject.Kind, errNotObject.Msg, errNotObject.Details, err)
	}
	if b == nil {
		b = body{}
	}
	return b, nil
}

func (b body) has(field string) bool {
	v, ok := b[field]
	return ok && !bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

// require checks presence of every field, in order, before any other work.
func (b body) require(fields ...string) error {
	for _, f := range fields {
		if !b.has(f) {
			return apperr.Missing(f)
		}
	}
	return nil
}

func (b body) str(field string) (string, error) {
	var s string
	if err := json.Unmarshal(b[field], &s); err != nil {
		return "", apperr.New(apperr.InvalidInput, "Invalid input", fmt.Sprintf("The '%s' field must be a string", field))
	}
	return s, nil
}

func (b body) value(field string) (any, error) {
	var v any
	dec := json.NewDecoder(bytes.NewReader(b[field]))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, apperr.New(apperr.InvalidInput, "Invalid input", fmt.Sprintf("The '%s' field is not valid JSON", field))
	}
	return v, nil
}

func emptyAfterSanitize(field string) error {
	return apperr.New(apperr.InvalidInput, "Invalid input", fmt.Sprintf("The '%s' field cannot be empty after sanitization", field))
}

// analyze runs render, invoke and resolve for an assembled request. Upstream
// failures carry the route's own details text.
func (h *Handle) analyze(r *http.Request, req prompt.Request, details string) (resolve.Result, error) {
	rendered, err := prompt.Render(req)
	if err != nil {
		return resolve.Result{}, err
	}
	reply, err := h.inv.Invoke(r.Context(), req.TemplateID(), rendered)
	if err != nil {
		var ae *apperr.Error
		if errors.As(err, &ae) && ae.Kind == apperr.UpstreamError {
			return resolve.Result{}, apperr.Wrap(apperr.UpstreamError, "Analysis failed", details, ae.Err)
		}
		return resolve.Result{}, err
	}
	res := resolve.Resolve(reply, req.TemplateID())
	if res.Degraded() {
		h.log.Warn("model reply is not a JSON object, using fallback",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("template", string(req.TemplateID())),
			zap.Int("reply_bytes", len(reply)),
		)
	}
	return res, nil
}
