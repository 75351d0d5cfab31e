package service

import (
	"go-inventory-client/internal/model"
	"go-inventory-client/internal/repository"
)

type DashboardService interface {
	GetDashboardStats() (*model.Stats, error)
}

type dashboardService struct {
	productRepo repository.ProductRepository
}

func NewDashboardService(pRepo repository.ProductRepository) DashboardService {
	return &dashboardService{productRepo: pRepo}
}

// GetDashboardStats aggregates the whole catalogue the same way the client
// dashboard does.
func (s *dashboardService) GetDashboardStats() (*model.Stats, error) {
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, err
	}
	stats := model.Summarize(products)
	return &stats, nil
}
