package transport

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"authorize-gateway/internal/logger"
	"authorize-gateway/internal/metrics"
	"authorize-gateway/internal/payment"
	"authorize-gateway/internal/payment/authorize"
	"authorize-gateway/internal/utils"

	"go.uber.org/zap"
)

// GatewayFactory returns a fresh Gateway per request, so no transaction
// state is shared between callers.
type GatewayFactory func() *authorize.Gateway

type ProcessRequest struct {
	payment.Payment
	ReferenceID string `json:"reference_id"`
	// Capture overrides the configured capture mode when set.
	Capture *bool `json:"capture,omitempty"`
}

type CaptureRequest struct {
	ReferenceID string `json:"reference_id"`
}

type PaymentHandler struct {
	newGateway GatewayFactory
	metrics    *metrics.PaymentMetrics
}

func NewPaymentHandler(newGateway GatewayFactory, m *metrics.PaymentMetrics) *PaymentHandler {
	if m == nil {
		m = &metrics.PaymentMetrics{}
	}
	return &PaymentHandler{newGateway: newGateway, metrics: m}
}

// Process handles POST /v1/payments.
func (h *PaymentHandler) Process(w http.ResponseWriter, r *http.Request) {
	var req ProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	ctx := logger.WithReferenceID(r.Context(), req.ReferenceID)

	g := h.newGateway().SetReferenceID(req.ReferenceID)
	if req.Capture != nil {
		g.SetCaptureMode(*req.Capture)
	}

	timer := metrics.StartTimer()
	res := g.Process(ctx, req.Payment)
	h.metrics.Observe(res, false, timer.Duration())

	writeResult(w, r, res)
}

// Capture handles POST /v1/payments/{transaction_id}/capture.
func (h *PaymentHandler) Capture(w http.ResponseWriter, r *http.Request) {
	// the body is optional
	var req CaptureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	ctx := logger.WithReferenceID(r.Context(), req.ReferenceID)

	g := h.newGateway().
		SetReferenceID(req.ReferenceID).
		SetTransactionID(r.PathValue("transaction_id"))

	timer := metrics.StartTimer()
	res := g.Capture(ctx)
	h.metrics.Observe(res, true, timer.Duration())

	writeResult(w, r, res)
}

// Metrics handles GET /metrics.
func (h *PaymentHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.metrics.Snapshot())
}

func writeResult(w http.ResponseWriter, r *http.Request, res payment.Result) {
	if !res.IsError() {
		utils.WriteJSON(w, http.StatusOK, res.Transaction())
		return
	}

	perr := res.Err()
	status := http.StatusPaymentRequired
	if perr.IsInputError() {
		status = http.StatusUnprocessableEntity
	}

	logger.FromCtx(r.Context()).Info("payment failed",
		zap.String("code", perr.Code),
		zap.Int("status", status),
	)
	utils.WriteJSON(w, status, perr)
}
