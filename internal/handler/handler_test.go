package handler

import (
	"context"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"premium-estimator/internal/config"
	"premium-estimator/internal/engine"
	"premium-estimator/internal/model"
)

type recordingNotifier struct {
	sent []model.Snapshot
}

func (n *recordingNotifier) NotifyAsync(_ context.Context, snap model.Snapshot) {
	n.sent = append(n.sent, snap)
}

func newTestHandler(t *testing.T) (*Handler, *recordingNotifier) {
	t.Helper()
	n := &recordingNotifier{}
	cfg := config.Config{
		ContactURL: "https://lin.ee/dDnbPak",
		Pricing:    config.DefaultPricing(),
	}
	h, err := New(engine.New(cfg, n, zap.NewNop()), zap.NewNop())
	require.NoError(t, err)
	return h, n
}

func do(h *Handler, method, path, body, cookie string) *fasthttp.RequestCtx {
	req := fasthttp.AcquireRequest()
	req.Header.SetMethod(method)
	req.SetRequestURI(path)
	if body != "" {
		req.Header.SetContentType("application/json")
		req.SetBodyString(body)
	}
	if cookie != "" {
		req.Header.SetCookie(SessionCookie, cookie)
	}

	ctx := &fasthttp.RequestCtx{}
	ctx.Init(req, nil, nil)
	h.Serve(ctx)
	return ctx
}

func responseCookie(ctx *fasthttp.RequestCtx) (string, bool) {
	c := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(c)
	c.SetKey(SessionCookie)
	if !ctx.Response.Header.Cookie(c) {
		return "", false
	}
	return string(c.Value()), true
}

func responseCookieExpiry(ctx *fasthttp.RequestCtx) (time.Time, bool) {
	c := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(c)
	c.SetKey(SessionCookie)
	if !ctx.Response.Header.Cookie(c) {
		return time.Time{}, false
	}
	return c.Expire(), true
}

func TestCalculate(t *testing.T) {
	h, _ := newTestHandler(t)

	ctx := do(h, fasthttp.MethodPost, "/api/calculate",
		`{"income":"300","age":"45","spouse_age":"none","preschool_dependents":"0","other_dependents":"0"}`, "")

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "application/json", string(ctx.Response.Header.ContentType()))

	var body struct {
		Metadata model.CalculationMetadata `json:"calculation_metadata"`
		Result   struct {
			InquiryID string `json:"inquiry_id"`
			Income    int64  `json:"income"`
			Insurance int64  `json:"estimated_annual_insurance"`
			Pension   int64  `json:"annual_pension_cost"`
			Savings   int64  `json:"projected_annual_savings"`
		} `json:"calculation_result"`
		ModalHTML string `json:"modal_html"`
	}
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &body))

	assert.Equal(t, model.OutcomeSuccess, body.Metadata.CalculationOutcome)
	assert.Equal(t, int64(3_000_000), body.Result.Income)
	assert.Equal(t, int64(404_390), body.Result.Insurance)
	assert.Equal(t, int64(203_760), body.Result.Pension)
	assert.Equal(t, int64(152_150), body.Result.Savings)
	assert.Contains(t, body.ModalHTML, "404,390")
	assert.Contains(t, body.ModalHTML, body.Result.InquiryID)

	cookie, ok := responseCookie(ctx)
	require.True(t, ok, "expected the inquiry cookie to be set")
	assert.Equal(t, body.Result.InquiryID, cookie)
	expire, _ := responseCookieExpiry(ctx)
	assert.True(t, expire.IsZero(), "session cookie must not carry an expiry")
}

func TestCalculateAcceptsNumbers(t *testing.T) {
	h, _ := newTestHandler(t)

	ctx := do(h, fasthttp.MethodPost, "/api/calculate",
		`{"income":300,"age":45,"spouse_age":"none","preschool_dependents":0,"other_dependents":0}`, "")

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
}

func TestCalculateKeepsInquiryCookie(t *testing.T) {
	h, _ := newTestHandler(t)

	ctx := do(h, fasthttp.MethodPost, "/api/calculate", `{"income":"450","age":"41"}`, "TCL171700000012342")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	cookie, _ := responseCookie(ctx)
	assert.Equal(t, "TCL171700000012342", cookie)
	assert.Contains(t, string(ctx.Response.Body()), `"inquiry_id":"TCL171700000012342"`)
}

func TestCalculateIncomeRequired(t *testing.T) {
	h, _ := newTestHandler(t)

	ctx := do(h, fasthttp.MethodPost, "/api/calculate", `{"income":"","age":"45"}`, "")

	require.Equal(t, fasthttp.StatusUnprocessableEntity, ctx.Response.StatusCode())
	var resp model.CalculationResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	assert.Equal(t, model.OutcomeFailure, resp.CalculationMetadata.CalculationOutcome)
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, "INCOME_REQUIRED", resp.Messages[0].Code)
	assert.Equal(t, "income", resp.Messages[0].Field)
	assert.Nil(t, resp.CalculationResult)

	_, ok := responseCookie(ctx)
	assert.False(t, ok)
}

func TestCalculateInvalidBody(t *testing.T) {
	h, _ := newTestHandler(t)

	ctx := do(h, fasthttp.MethodPost, "/api/calculate", `{"income":`, "")

	require.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	assert.Equal(t, fasthttp.StatusBadRequest, resp.Status)
	assert.Contains(t, resp.Message, "Invalid request body")
}

func TestConsult(t *testing.T) {
	h, n := newTestHandler(t)

	ctx := do(h, fasthttp.MethodPost, "/api/consult", `{"income":"300","age":"45","spouse_age":"none"}`, "TCL171700000012342")

	require.Equal(t, fasthttp.StatusAccepted, ctx.Response.StatusCode())
	assert.JSONEq(t, `{"contact_url":"https://lin.ee/dDnbPak"}`, string(ctx.Response.Body()))

	require.Len(t, n.sent, 1)
	assert.Equal(t, "TCL171700000012342", n.sent[0].InquiryID)
	assert.Equal(t, int64(608_150), n.sent[0].CurrentTotalAnnualPayment)
}

func TestConsultWithoutIncome(t *testing.T) {
	h, n := newTestHandler(t)

	ctx := do(h, fasthttp.MethodPost, "/api/consult", `{"age":"45"}`, "")

	assert.Equal(t, fasthttp.StatusUnprocessableEntity, ctx.Response.StatusCode())
	assert.Empty(t, n.sent)
}

func TestResetInquiry(t *testing.T) {
	h, _ := newTestHandler(t)

	ctx := do(h, fasthttp.MethodDelete, "/api/inquiry", "", "TCL171700000012342")

	assert.Equal(t, fasthttp.StatusNoContent, ctx.Response.StatusCode())
	expire, ok := responseCookieExpiry(ctx)
	require.True(t, ok, "expected a deleting cookie")
	assert.True(t, expire.Before(time.Now()))
}

func TestContactRedirect(t *testing.T) {
	h, _ := newTestHandler(t)

	ctx := do(h, fasthttp.MethodGet, "/contact", "", "")

	assert.Equal(t, fasthttp.StatusFound, ctx.Response.StatusCode())
	assert.Equal(t, "https://lin.ee/dDnbPak", string(ctx.Response.Header.Peek(fasthttp.HeaderLocation)))
}

func TestPage(t *testing.T) {
	h, _ := newTestHandler(t)

	ctx := do(h, fasthttp.MethodGet, "/", "", "")

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Header.ContentType()), "text/html")
	assert.Contains(t, string(ctx.Response.Body()), `id="calculate_button"`)
}

func TestRouting(t *testing.T) {
	h, _ := newTestHandler(t)

	tests := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{name: "health", method: fasthttp.MethodGet, path: "/healthz", status: fasthttp.StatusOK},
		{name: "unknown path", method: fasthttp.MethodGet, path: "/nope", status: fasthttp.StatusNotFound},
		{name: "calculate via GET", method: fasthttp.MethodGet, path: "/api/calculate", status: fasthttp.StatusMethodNotAllowed},
		{name: "page via POST", method: fasthttp.MethodPost, path: "/", status: fasthttp.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := do(h, tt.method, tt.path, "", "")
			assert.Equal(t, tt.status, ctx.Response.StatusCode())
		})
	}
}
