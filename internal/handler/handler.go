package handler

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"contract-compliance/internal/dates"
	"contract-compliance/internal/engine"
	"contract-compliance/internal/expiration"
	"contract-compliance/internal/model"
	"contract-compliance/internal/store"
)

const (
	contractsPrefix  = "/v1/contracts/"
	complianceSuffix = "/compliance"

	storeTimeout = 15 * time.Second
)

type Handler struct {
	engine   *engine.Engine
	logger   *zap.Logger
	validate *validator.Validate
}

func New(eng *engine.Engine, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		engine:   eng,
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Handle routes a request and logs its outcome.
func (h *Handler) Handle(ctx *fasthttp.RequestCtx) {
	start := time.Now()
	h.route(ctx)
	h.logger.Info("request",
		zap.ByteString("method", ctx.Method()),
		zap.ByteString("path", ctx.Path()),
		zap.Int("status", ctx.Response.StatusCode()),
		zap.Duration("duration", time.Since(start)),
	)
}

func (h *Handler) route(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	method := string(ctx.Method())

	switch {
	case path == "/health":
		h.requireMethod(ctx, method, fasthttp.MethodGet, h.handleHealth)
	case path == "/v1/compliance/evaluate":
		h.requireMethod(ctx, method, fasthttp.MethodPost, h.handleEvaluate)
	case path == "/v1/compliance/evaluations":
		h.requireMethod(ctx, method, fasthttp.MethodPost, h.handleEvaluations)
	case path == "/v1/contracts/compliance":
		h.requireMethod(ctx, method, fasthttp.MethodPost, h.handleContractEvaluations)
	case strings.HasPrefix(path, contractsPrefix) && strings.HasSuffix(path, complianceSuffix):
		id := strings.TrimSuffix(strings.TrimPrefix(path, contractsPrefix), complianceSuffix)
		if id == "" || strings.Contains(id, "/") {
			writeError(ctx, fasthttp.StatusNotFound, "Not found")
			return
		}
		h.requireMethod(ctx, method, fasthttp.MethodGet, func(ctx *fasthttp.RequestCtx) {
			h.handleContractCompliance(ctx, id)
		})
	case path == "/v1/expirations/scan":
		h.requireMethod(ctx, method, fasthttp.MethodPost, h.handleScan)
	case path == "/v1/expirations":
		h.requireMethod(ctx, method, fasthttp.MethodGet, h.handleStoredScan)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}
}

func (h *Handler) requireMethod(ctx *fasthttp.RequestCtx, got, want string, next fasthttp.RequestHandler) {
	if got != want {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	next(ctx)
}

func (h *Handler) handleHealth(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, map[string]any{
		"status": "ok",
		"store":  h.engine.HasStore(),
	})
}

func (h *Handler) handleEvaluate(ctx *fasthttp.RequestCtx) {
	var req model.SingleEvaluationRequest
	if !h.decode(ctx, &req) {
		return
	}

	item := model.EvaluationItem{Status: req.Status, ProposedEndDate: req.ProposedEndDate}
	for _, m := range engine.ValidateItem(item) {
		if m.Level == model.LevelCritical {
			writeError(ctx, fasthttp.StatusBadRequest, m.Message)
			return
		}
	}

	proposed, ok := optionalDate(ctx, req.ProposedEndDate)
	if !ok {
		return
	}

	ev := h.engine.Evaluator()
	writeJSON(ctx, fasthttp.StatusOK, model.SingleEvaluationResponse{
		Alert:   ev.Evaluate(req.Status, proposed),
		Summary: ev.Summary(req.Status, proposed),
	})
}

func (h *Handler) handleEvaluations(ctx *fasthttp.RequestCtx) {
	var req model.EvaluationRequest
	if !h.decode(ctx, &req) {
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, h.engine.EvaluateBatch(&req))
}

func (h *Handler) handleContractEvaluations(ctx *fasthttp.RequestCtx) {
	var req struct {
		TenantID string                 `json:"tenant_id"`
		Targets  []model.ContractTarget `json:"targets" validate:"required,min=1,dive"`
	}
	if !h.decode(ctx, &req) {
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	resp, err := h.engine.EvaluateContracts(reqCtx, req.TenantID, req.Targets)
	if err != nil {
		h.writeEngineError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, resp)
}

func (h *Handler) handleContractCompliance(ctx *fasthttp.RequestCtx, contractID string) {
	proposed, ok := optionalDate(ctx, string(ctx.QueryArgs().Peek("proposed_end_date")))
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	resp, err := h.engine.EvaluateContract(reqCtx, contractID, proposed)
	if err != nil {
		h.writeEngineError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, resp)
}

func (h *Handler) handleScan(ctx *fasthttp.RequestCtx) {
	var req model.ScanRequest
	if !h.decode(ctx, &req) {
		return
	}

	today := h.engine.Today()
	if req.Today != "" {
		t, ok := dates.Parse(req.Today)
		if !ok {
			writeError(ctx, fasthttp.StatusBadRequest, "today must be a YYYY-MM-DD date")
			return
		}
		today = t
	}

	cfg := expiration.NewConfig(req.DaysBeforeExpiration...)
	writeJSON(ctx, fasthttp.StatusOK, scanResponse(today, expiration.Scan(req.Contracts, cfg, today)))
}

func (h *Handler) handleStoredScan(ctx *fasthttp.RequestCtx) {
	reqCtx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	entries, today, err := h.engine.ScanStored(reqCtx)
	if err != nil {
		h.writeEngineError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, scanResponse(today, entries))
}

func scanResponse(today time.Time, entries []model.ExpiringContractEntry) model.ScanResponse {
	return model.ScanResponse{Today: dates.Format(today), Entries: expiration.WithBands(entries)}
}

func (h *Handler) decode(ctx *fasthttp.RequestCtx, v any) bool {
	if err := json.Unmarshal(ctx.PostBody(), v); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	if err := h.validate.Struct(v); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request: "+err.Error())
		return false
	}
	return true
}

func (h *Handler) writeEngineError(ctx *fasthttp.RequestCtx, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(ctx, fasthttp.StatusNotFound, err.Error())
	case errors.Is(err, engine.ErrNoStore):
		writeError(ctx, fasthttp.StatusServiceUnavailable, err.Error())
	default:
		h.logger.Error("store request failed", zap.Error(err))
		writeError(ctx, fasthttp.StatusInternalServerError, "Internal error")
	}
}

// optionalDate parses an optional YYYY-MM-DD value, writing a 400 when it is malformed.
func optionalDate(ctx *fasthttp.RequestCtx, s string) (*time.Time, bool) {
	if s == "" {
		return nil, true
	}
	t, ok := dates.Parse(s)
	if !ok {
		writeError(ctx, fasthttp.StatusBadRequest, "proposed_end_date must be a YYYY-MM-DD date")
		return nil, false
	}
	return &t, true
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "Failed to encode response")
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	body, _ := json.Marshal(model.ErrorResponse{
		Status:  status,
		Message: message,
	})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}
