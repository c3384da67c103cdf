package validate

import (
	"context"
	"fmt"

	"github.com/Iktahana/illusions-sub003/internal/model"
)

// Service routes a candidate batch through the lifecycle controller so
// the model is guaranteed loaded while the validator runs.
type Service struct {
	controller *model.Controller
	validator  *Validator
}

// NewService wires a validator to a lifecycle controller.
func NewService(controller *model.Controller, validator *Validator) (*Service, error) {
	if controller == nil || validator == nil {
		return nil, fmt.Errorf("controller and validator are required")
	}
	return &Service{controller: controller, validator: validator}, nil
}

// Run validates the batch under the controller's supervision. When the
// model cannot be loaded at all the batch fails open: every candidate
// is returned alongside the error.
func (s *Service) Run(ctx context.Context, candidates []Candidate) ([]Candidate, error) {
	var out []Candidate
	err := s.controller.RequestValidation(ctx, func(taskCtx context.Context) error {
		out = s.validator.Validate(taskCtx, candidates)
		return nil
	})
	if err != nil {
		return candidates, err
	}
	return out, nil
}
