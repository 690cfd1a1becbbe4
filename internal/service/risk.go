package service

import (
	"context"
	"fmt"

	"expertdesk-backend/internal/domain"
	"expertdesk-backend/internal/repository"
)

// fraudFlagThreshold is the number of lost disputes at which an expert is
// flagged. Advisory only; operators can still approve.
const fraudFlagThreshold = 3

type riskService struct {
	disputeRepo repository.DisputeRepository
}

func NewRiskService(disputeRepo repository.DisputeRepository) RiskService {
	return &riskService{disputeRepo: disputeRepo}
}

func (s *riskService) Risk(ctx context.Context, expertID int64) (*domain.RiskReport, error) {
	open, err := s.disputeRepo.CountByExpert(ctx, expertID,
		domain.DisputeStatusOpen, domain.DisputeStatusUnderReview)
	if err != nil {
		return nil, fmt.Errorf("count open disputes: %w", err)
	}
	lost, err := s.disputeRepo.CountByExpert(ctx, expertID, domain.DisputeStatusResolvedRefunded)
	if err != nil {
		return nil, fmt.Errorf("count lost disputes: %w", err)
	}
	return &domain.RiskReport{
		OpenDisputes: open,
		LostDisputes: lost,
		FraudFlag:    lost >= fraudFlagThreshold,
	}, nil
}
