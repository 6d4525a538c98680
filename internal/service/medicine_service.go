package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vetclinic/internal/db"
	"vetclinic/internal/entities"
	apperrors "vetclinic/internal/errors"
	"vetclinic/internal/repository"
)

// MedicineService backs the pharmacy inventory admin screens.
type MedicineService struct {
	Repo repository.MedicineRepository
}

func NewMedicineService(repo repository.MedicineRepository) *MedicineService {
	return &MedicineService{Repo: repo}
}

func (s *MedicineService) List(ctx context.Context, category string, lowStockOnly bool) ([]entities.MedicineResponse, error) {
	meds, err := s.Repo.List(ctx, category, lowStockOnly)
	if err != nil {
		return nil, err
	}
	out := make([]entities.MedicineResponse, 0, len(meds))
	for i := range meds {
		out = append(out, toMedicineResponse(&meds[i]))
	}
	return out, nil
}

func (s *MedicineService) Create(ctx context.Context, req entities.MedicineRequest) (*entities.MedicineResponse, error) {
	med, err := medicineFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, med); err != nil {
		return nil, err
	}
	resp := toMedicineResponse(med)
	return &resp, nil
}

func (s *MedicineService) Update(ctx context.Context, id int, req entities.MedicineRequest) (*entities.MedicineResponse, error) {
	current, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNoRows(err) {
			return nil, apperrors.NotFound(fmt.Sprintf("medicine %d not found", id))
		}
		return nil, err
	}

	med, err := medicineFromRequest(req)
	if err != nil {
		return nil, err
	}
	med.ID = current.ID
	med.CreatedAt = current.CreatedAt

	if err := s.Repo.Update(ctx, med); err != nil {
		return nil, err
	}
	resp := toMedicineResponse(med)
	return &resp, nil
}

func (s *MedicineService) Delete(ctx context.Context, id int) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		if repository.IsNoRows(err) {
			return apperrors.NotFound(fmt.Sprintf("medicine %d not found", id))
		}
		return err
	}
	return nil
}

func medicineFromRequest(req entities.MedicineRequest) (*db.Medicine, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.Validation("name must not be empty")
	}
	if req.UnitPrice < 0 || req.Stock < 0 || req.ReorderLevel < 0 {
		return nil, apperrors.Validation("unit_price, stock and reorder_level must not be negative")
	}

	var expiresOn *time.Time
	if strings.TrimSpace(req.ExpiresOn) != "" {
		t, err := time.Parse("2006-01-02", req.ExpiresOn)
		if err != nil {
			return nil, apperrors.Validation("expires_on must be YYYY-MM-DD")
		}
		expiresOn = &t
	}

	return &db.Medicine{
		Name:         strings.TrimSpace(req.Name),
		Brand:        strings.TrimSpace(req.Brand),
		Category:     strings.TrimSpace(req.Category),
		UnitPrice:    req.UnitPrice,
		Stock:        req.Stock,
		ReorderLevel: req.ReorderLevel,
		ExpiresOn:    expiresOn,
	}, nil
}

func toMedicineResponse(med *db.Medicine) entities.MedicineResponse {
	resp := entities.MedicineResponse{
		ID:           med.ID,
		Name:         med.Name,
		Brand:        med.Brand,
		Category:     med.Category,
		UnitPrice:    med.UnitPrice,
		Stock:        med.Stock,
		ReorderLevel: med.ReorderLevel,
		LowStock:     med.Stock <= med.ReorderLevel,
		CreatedAt:    med.CreatedAt,
		UpdatedAt:    med.UpdatedAt,
	}
	if med.ExpiresOn != nil {
		resp.ExpiresOn = med.ExpiresOn.Format("2006-01-02")
	}
	return resp
}
