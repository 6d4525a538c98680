package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"vetclinic/internal/db"
)

// MedicineRepository persists the pharmacy inventory.
type MedicineRepository interface {
	List(ctx context.Context, category string, lowStockOnly bool) ([]db.Medicine, error)
	GetByID(ctx context.Context, id int) (*db.Medicine, error)
	Create(ctx context.Context, med *db.Medicine) error
	Update(ctx context.Context, med *db.Medicine) error
	Delete(ctx context.Context, id int) error
}

type medicineRepository struct {
	DB *sql.DB
}

func NewMedicineRepository(database *sql.DB) MedicineRepository {
	return &medicineRepository{DB: database}
}

func (r *medicineRepository) List(ctx context.Context, category string, lowStockOnly bool) ([]db.Medicine, error) {
	query := `
	SELECT id, name, brand, category, unit_price, stock, reorder_level, expires_on, created_at, updated_at
	FROM medicines
	WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if category != "" {
		query += " AND category = $" + strconv.Itoa(idx)
		args = append(args, category)
		idx++
	}
	if lowStockOnly {
		query += " AND stock <= reorder_level"
	}
	query += " ORDER BY name"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying medicines: %w", err)
	}
	defer rows.Close()

	var meds []db.Medicine
	for rows.Next() {
		var med db.Medicine
		err := rows.Scan(
			&med.ID, &med.Name, &med.Brand, &med.Category, &med.UnitPrice,
			&med.Stock, &med.ReorderLevel, &med.ExpiresOn, &med.CreatedAt, &med.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning medicine: %w", err)
		}
		meds = append(meds, med)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating medicines: %w", err)
	}
	return meds, nil
}

func (r *medicineRepository) GetByID(ctx context.Context, id int) (*db.Medicine, error) {
	var med db.Medicine
	query := `
		SELECT id, name, brand, category, unit_price, stock, reorder_level, expires_on, created_at, updated_at
		FROM medicines
		WHERE id = $1`

	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&med.ID, &med.Name, &med.Brand, &med.Category, &med.UnitPrice,
		&med.Stock, &med.ReorderLevel, &med.ExpiresOn, &med.CreatedAt, &med.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, fmt.Errorf("medicine %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("error querying medicine: %w", err)
	}
	return &med, nil
}

func (r *medicineRepository) Create(ctx context.Context, med *db.Medicine) error {
	query := `
		INSERT INTO medicines (name, brand, category, unit_price, stock, reorder_level, expires_on, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	err := r.DB.QueryRowContext(ctx, query,
		med.Name, med.Brand, med.Category, med.UnitPrice, med.Stock, med.ReorderLevel, med.ExpiresOn,
	).Scan(&med.ID, &med.CreatedAt, &med.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error inserting medicine: %w", err)
	}
	return nil
}

func (r *medicineRepository) Update(ctx context.Context, med *db.Medicine) error {
	query := `
		UPDATE medicines
		SET name = $1, brand = $2, category = $3, unit_price = $4,
		    stock = $5, reorder_level = $6, expires_on = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at`

	err := r.DB.QueryRowContext(ctx, query,
		med.Name, med.Brand, med.Category, med.UnitPrice,
		med.Stock, med.ReorderLevel, med.ExpiresOn, med.ID,
	).Scan(&med.UpdatedAt)
	if err != nil {
		if IsNoRows(err) {
			return fmt.Errorf("medicine %d not found: %w", med.ID, err)
		}
		return fmt.Errorf("error updating medicine: %w", err)
	}
	return nil
}

func (r *medicineRepository) Delete(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM medicines WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting medicine: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("medicine %d not found: %w", id, sql.ErrNoRows)
	}
	return nil
}
