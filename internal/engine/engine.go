package engine

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"premium-estimator/internal/config"
	"premium-estimator/internal/estimator"
	"premium-estimator/internal/forminput"
	"premium-estimator/internal/inquiry"
	"premium-estimator/internal/model"
)

// ErrNothingCalculated is returned when a consultation is requested before
// the session has a result.
var ErrNothingCalculated = errors.New("no calculation in session")

// Notifier delivers snapshots without blocking the caller.
type Notifier interface {
	NotifyAsync(ctx context.Context, snap model.Snapshot)
}

type Engine struct {
	cfg      config.Config
	ids      *inquiry.Generator
	notifier Notifier
	logger   *zap.Logger
}

type Option func(*Engine)

func WithGenerator(g *inquiry.Generator) Option {
	return func(e *Engine) { e.ids = g }
}

func New(cfg config.Config, n Notifier, logger *zap.Logger, opts ...Option) *Engine {
	e := &Engine{
		cfg:      cfg,
		ids:      inquiry.NewGenerator(),
		notifier: n,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ContactURL is where the consultation call to action leads.
func (e *Engine) ContactURL() string {
	return e.cfg.ContactURL
}

// Calculate runs one calculate action for the session. A blocking input
// condition yields a FAILURE response with a CRITICAL message naming the
// field, and leaves the session untouched.
func (e *Engine) Calculate(s *Session, req model.CalculationRequest) *model.CalculationResponse {
	start := time.Now()

	in, err := forminput.Parse(req)
	if err != nil {
		msg := model.CalculationMessage{
			ID:      0,
			Level:   model.LevelCritical,
			Code:    "INVALID_INPUT",
			Message: err.Error(),
		}
		var fe *forminput.FieldError
		if errors.As(err, &fe) {
			msg.Code = fe.Code
			msg.Message = fe.Message
			msg.Field = fe.Field
		}
		e.logger.Debug("calculation rejected", zap.String("code", msg.Code))
		return e.response(start, model.OutcomeFailure, []model.CalculationMessage{msg}, nil)
	}

	if s.inquiryID == "" {
		s.inquiryID = e.ids.Generate()
	}

	pricing := e.cfg.Pricing
	breakdown := estimator.Estimate(in, pricing.Rates)
	pension := estimator.PensionAnnual(in.SpouseStatus.Present(), pricing.PensionMonthly)
	result := estimator.Assemble(s.inquiryID, in, breakdown, pension, pricing.AltPlanAnnualCost)
	s.last = &result

	e.logger.Info("calculation completed",
		zap.String("inquiry_id", result.InquiryID),
		zap.Int64("estimated_annual_insurance", result.EstimatedAnnualInsurance),
		zap.Int64("projected_annual_savings", result.ProjectedAnnualSavings))

	return e.response(start, model.OutcomeSuccess, []model.CalculationMessage{}, &result)
}

// RequestConsultation hands the session's last result to the notifier and
// returns the contact URL right away; delivery is never awaited.
func (e *Engine) RequestConsultation(ctx context.Context, s *Session) (string, error) {
	result, ok := s.Last()
	if !ok {
		return "", ErrNothingCalculated
	}
	e.notifier.NotifyAsync(ctx, result.Snapshot())
	return e.cfg.ContactURL, nil
}

func (e *Engine) response(start time.Time, outcome string, msgs []model.CalculationMessage, result *model.CalculationResult) *model.CalculationResponse {
	elapsed := time.Since(start)
	now := time.Now().UTC()

	return &model.CalculationResponse{
		CalculationMetadata: model.CalculationMetadata{
			CalculationID:          uuid.New().String(),
			CalculationStartedAt:   now.Add(-elapsed).Format(time.RFC3339),
			CalculationCompletedAt: now.Format(time.RFC3339),
			CalculationDurationMs:  elapsed.Milliseconds(),
			CalculationOutcome:     outcome,
		},
		Messages:          msgs,
		CalculationResult: result,
	}
}
