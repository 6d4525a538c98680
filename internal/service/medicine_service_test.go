package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vetclinic/internal/db"
	"vetclinic/internal/entities"
	apperrors "vetclinic/internal/errors"
)

func medicineReq(name string, stock, reorder int) entities.MedicineRequest {
	return entities.MedicineRequest{
		Name:         name,
		Category:     "antibiotic",
		UnitPrice:    1200,
		Stock:        stock,
		ReorderLevel: reorder,
	}
}

type mockMedicineRepo struct {
	medicines map[int]*db.Medicine
	nextID    int
}

func newMockMedicineRepo() *mockMedicineRepo {
	return &mockMedicineRepo{medicines: map[int]*db.Medicine{}, nextID: 1}
}

func (m *mockMedicineRepo) List(ctx context.Context, category string, lowStockOnly bool) ([]db.Medicine, error) {
	var out []db.Medicine
	for _, med := range m.medicines {
		if category != "" && med.Category != category {
			continue
		}
		if lowStockOnly && med.Stock > med.ReorderLevel {
			continue
		}
		out = append(out, *med)
	}
	return out, nil
}

func (m *mockMedicineRepo) GetByID(ctx context.Context, id int) (*db.Medicine, error) {
	med, ok := m.medicines[id]
	if !ok {
		return nil, fmt.Errorf("medicine %d not found: %w", id, sql.ErrNoRows)
	}
	copied := *med
	return &copied, nil
}

func (m *mockMedicineRepo) Create(ctx context.Context, med *db.Medicine) error {
	med.ID = m.nextID
	m.nextID++
	stored := *med
	m.medicines[med.ID] = &stored
	return nil
}

func (m *mockMedicineRepo) Update(ctx context.Context, med *db.Medicine) error {
	if _, ok := m.medicines[med.ID]; !ok {
		return fmt.Errorf("medicine %d not found: %w", med.ID, sql.ErrNoRows)
	}
	stored := *med
	m.medicines[med.ID] = &stored
	return nil
}

func (m *mockMedicineRepo) Delete(ctx context.Context, id int) error {
	if _, ok := m.medicines[id]; !ok {
		return fmt.Errorf("medicine %d not found: %w", id, sql.ErrNoRows)
	}
	delete(m.medicines, id)
	return nil
}

func TestMedicineCreate(t *testing.T) {
	svc := NewMedicineService(newMockMedicineRepo())

	resp, err := svc.Create(context.Background(), medicineReq("Amoxicillin", 20, 5))
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	assert.False(t, resp.LowStock)
}

func TestMedicineCreateValidation(t *testing.T) {
	svc := NewMedicineService(newMockMedicineRepo())

	req := medicineReq(" ", 20, 5)
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidation, apperrors.FromError(err).Code)

	req = medicineReq("Amoxicillin", -1, 5)
	_, err = svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidation, apperrors.FromError(err).Code)
}

func TestMedicineLowStockFlag(t *testing.T) {
	repo := newMockMedicineRepo()
	svc := NewMedicineService(repo)

	_, err := svc.Create(context.Background(), medicineReq("Amoxicillin", 3, 5))
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), medicineReq("Ivermectin", 50, 5))
	require.NoError(t, err)

	all, err := svc.List(context.Background(), "", false)
	require.NoError(t, err)
	require.Len(t, all, 2)

	low, err := svc.List(context.Background(), "", true)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "Amoxicillin", low[0].Name)
	assert.True(t, low[0].LowStock)
}

func TestMedicineUpdateNotFound(t *testing.T) {
	svc := NewMedicineService(newMockMedicineRepo())

	_, err := svc.Update(context.Background(), 99, medicineReq("Amoxicillin", 20, 5))
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.FromError(err).Code)
}

func TestMedicineDelete(t *testing.T) {
	repo := newMockMedicineRepo()
	svc := NewMedicineService(repo)

	created, err := svc.Create(context.Background(), medicineReq("Amoxicillin", 20, 5))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))

	err = svc.Delete(context.Background(), created.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.FromError(err).Code)
}
