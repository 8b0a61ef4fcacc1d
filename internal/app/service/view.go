package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/atinyakov/go-link-tracker/internal/models"
)

// ViewRequest is one visit to /view?token=<token>.
type ViewRequest struct {
	Token string
	// Password is the value the visitor typed, nil when none was submitted.
	Password *string
	// ViewerID identifies a signed-in visitor.
	ViewerID *string
	// Client describes the visitor's user agent.
	Client string
}

// ViewResult is what the visitor is shown.
type ViewResult struct {
	Link     *models.Link
	Decision GateDecision
}

// ViewService runs the public view pipeline: resolve, gate, record.
type ViewService struct {
	resolver *TokenResolver
	gate     *AccessGate
	recorder *ViewRecorder
	logger   *zap.Logger
}

// NewViewService creates a ViewService.
func NewViewService(resolver *TokenResolver, gate *AccessGate, recorder *ViewRecorder, logger *zap.Logger) *ViewService {
	return &ViewService{
		resolver: resolver,
		gate:     gate,
		recorder: recorder,
		logger:   logger,
	}
}

// Open resolves req.Token and evaluates the gate. A view is recorded only when
// the destination is shown; a failed recording is logged and does not fail the visit.
func (s *ViewService) Open(ctx context.Context, req ViewRequest) (*ViewResult, error) {
	link, err := s.resolver.Resolve(ctx, req.Token)
	if err != nil {
		return nil, err
	}

	decision := s.gate.Evaluate(link, req.Password)

	if decision.Visible {
		if err := s.recorder.Record(ctx, link, req.ViewerID, req.Client); err != nil {
			s.logger.Warn("view not recorded", zap.String("link_id", link.ID), zap.Error(err))
		}
	}

	return &ViewResult{Link: link, Decision: decision}, nil
}
