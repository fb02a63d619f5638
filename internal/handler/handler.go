package handler

import (
	"bytes"
	"context"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"premium-estimator/internal/engine"
	"premium-estimator/internal/model"
	"premium-estimator/internal/present"
)

// SessionCookie holds the inquiry code for the lifetime of the browser
// session. It carries no Expires, so the browser drops it on exit.
const SessionCookie = "inquiry_id"

type Handler struct {
	engine *engine.Engine
	logger *zap.Logger
	page   []byte
}

type calculateResponse struct {
	*model.CalculationResponse
	ModalHTML string `json:"modal_html,omitempty"`
}

type consultResponse struct {
	ContactURL string `json:"contact_url"`
}

func New(e *engine.Engine, logger *zap.Logger) (*Handler, error) {
	var buf bytes.Buffer
	if err := present.RenderPage(&buf, present.DefaultPageData()); err != nil {
		return nil, err
	}
	return &Handler{engine: e, logger: logger, page: buf.Bytes()}, nil
}

// Serve is the fasthttp entry point.
func (h *Handler) Serve(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case "/":
		h.route(ctx, fasthttp.MethodGet, h.handlePage)
	case "/api/calculate":
		h.route(ctx, fasthttp.MethodPost, h.handleCalculate)
	case "/api/consult":
		h.route(ctx, fasthttp.MethodPost, h.handleConsult)
	case "/api/inquiry":
		h.route(ctx, fasthttp.MethodDelete, h.handleResetInquiry)
	case "/contact":
		h.route(ctx, fasthttp.MethodGet, h.handleContact)
	case "/healthz":
		h.route(ctx, fasthttp.MethodGet, h.handleHealth)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}
}

func (h *Handler) route(ctx *fasthttp.RequestCtx, method string, fn fasthttp.RequestHandler) {
	if string(ctx.Method()) != method {
		ctx.Response.Header.Set(fasthttp.HeaderAllow, method)
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	fn(ctx)
}

func (h *Handler) handlePage(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("text/html; charset=utf-8")
	ctx.SetBody(h.page)
}

func (h *Handler) handleCalculate(ctx *fasthttp.RequestCtx) {
	req, ok := decodeRequest(ctx)
	if !ok {
		return
	}

	sess := engine.ResumeSession(string(ctx.Request.Header.Cookie(SessionCookie)))
	resp := h.engine.Calculate(sess, req)
	if resp.CalculationMetadata.CalculationOutcome != model.OutcomeSuccess {
		writeJSON(ctx, fasthttp.StatusUnprocessableEntity, resp)
		return
	}
	setSessionCookie(ctx, sess.InquiryID())

	var buf bytes.Buffer
	view := present.NewModalView(*resp.CalculationResult, h.engine.ContactURL())
	if err := present.RenderModal(&buf, view); err != nil {
		h.logger.Error("render modal failed", zap.String("inquiry_id", sess.InquiryID()), zap.Error(err))
		writeError(ctx, fasthttp.StatusInternalServerError, "Failed to render result")
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, calculateResponse{
		CalculationResponse: resp,
		ModalHTML:           buf.String(),
	})
}

// handleConsult recomputes the result from the re-posted form, so the server
// keeps nothing between requests, and queues the notification.
func (h *Handler) handleConsult(ctx *fasthttp.RequestCtx) {
	req, ok := decodeRequest(ctx)
	if !ok {
		return
	}

	sess := engine.ResumeSession(string(ctx.Request.Header.Cookie(SessionCookie)))
	resp := h.engine.Calculate(sess, req)
	if resp.CalculationMetadata.CalculationOutcome != model.OutcomeSuccess {
		writeJSON(ctx, fasthttp.StatusUnprocessableEntity, resp)
		return
	}
	setSessionCookie(ctx, sess.InquiryID())

	// RequestCtx is recycled once this handler returns, so the send must
	// not hold on to it.
	contactURL, err := h.engine.RequestConsultation(context.Background(), sess)
	if err != nil {
		writeError(ctx, fasthttp.StatusConflict, err.Error())
		return
	}
	writeJSON(ctx, fasthttp.StatusAccepted, consultResponse{ContactURL: contactURL})
}

func (h *Handler) handleResetInquiry(ctx *fasthttp.RequestCtx) {
	ctx.Response.Header.DelClientCookie(SessionCookie)
	ctx.SetStatusCode(fasthttp.StatusNoContent)
}

func (h *Handler) handleContact(ctx *fasthttp.RequestCtx) {
	ctx.Redirect(h.engine.ContactURL(), fasthttp.StatusFound)
}

func (h *Handler) handleHealth(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
}

func decodeRequest(ctx *fasthttp.RequestCtx) (model.CalculationRequest, bool) {
	var req model.CalculationRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return req, false
	}
	return req, true
}

func setSessionCookie(ctx *fasthttp.RequestCtx, inquiryID string) {
	c := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(c)
	c.SetKey(SessionCookie)
	c.SetValue(inquiryID)
	c.SetPath("/")
	c.SetHTTPOnly(true)
	c.SetSameSite(fasthttp.CookieSameSiteLaxMode)
	ctx.Response.Header.SetCookie(c)
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		ctx.Error(`{"status":500,"message":"encode response"}`, fasthttp.StatusInternalServerError)
		ctx.SetContentType("application/json")
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(b)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	writeJSON(ctx, status, model.ErrorResponse{
		Status:  status,
		Message: message,
	})
}
