package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/rental-manager/internal/models"
)

const propertyColumns = `p.id, p.owner_uid, u.first_name || ' ' || u.last_name,
			      p.title, p.address, p.property_type, p.status, p.price,
			      p.bedrooms, p.bathrooms, p.area, p.description,
			      p.created_at, p.updated_at`

func scanProperty(row interface{ Scan(...any) error }) (*models.Property, error) {
	var item models.Property
	var description sql.NullString
	if err := row.Scan(&item.ID, &item.OwnerUID, &item.OwnerName,
		&item.Title, &item.Address, &item.PropertyType, &item.Status, &item.Price,
		&item.Bedrooms, &item.Bathrooms, &item.Area, &description,
		&item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, err
	}
	if description.Valid {
		item.Description = &description.String
	}
	return &item, nil
}

// CreateProperty вставляет новый объект недвижимости владельца и возвращает его ID.
func (s *Storage) CreateProperty(ctx context.Context, username string, p models.Property) (int, error) {
	const op = "storage.CreateProperty"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO properties (owner_uid, title, address, property_type, status,
			      price, bedrooms, bathrooms, area, description)
			  VALUES ((SELECT uid FROM users WHERE username = $1), $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		username, p.Title, p.Address, p.PropertyType, p.Status,
		p.Price, p.Bedrooms, p.Bathrooms, p.Area, p.Description).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListProperties возвращает список объектов недвижимости владельца с пагинацией.
func (s *Storage) ListProperties(ctx context.Context, username string, limit, offset int) ([]*models.Property, error) {
	const op = "storage.ListProperties"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + propertyColumns + `
			  FROM properties p
			  JOIN users u ON u.uid = p.owner_uid
			  WHERE u.username = $1
			  ORDER BY p.id
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, username, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []*models.Property
	for rows.Next() {
		item, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ReadProperty возвращает объект недвижимости владельца по его ID.
// Чужой объект неотличим от несуществующего: оба дают ErrNotFound.
func (s *Storage) ReadProperty(ctx context.Context, username string, id int) (*models.Property, error) {
	const op = "storage.ReadProperty"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + propertyColumns + `
			  FROM properties p
			  JOIN users u ON u.uid = p.owner_uid
			  WHERE u.username = $1 AND p.id = $2`
	item, err := scanProperty(s.DB.QueryRowContext(ctx, query, username, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}

// UpdateProperty обновляет объект недвижимости владельца по его ID
// и возвращает количество изменённых строк.
func (s *Storage) UpdateProperty(ctx context.Context, username string, id int, p models.Property) (int, error) {
	const op = "storage.UpdateProperty"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE properties
			  SET title = $1, address = $2, property_type = $3, status = $4, price = $5,
			      bedrooms = $6, bathrooms = $7, area = $8, description = $9, updated_at = now()
			  WHERE id = $10
			    AND owner_uid = (SELECT uid FROM users WHERE username = $11)`
	result, err := s.DB.ExecContext(ctx, query,
		p.Title, p.Address, p.PropertyType, p.Status, p.Price,
		p.Bedrooms, p.Bathrooms, p.Area, p.Description, id, username)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveProperty удаляет объект недвижимости владельца по его ID
// и возвращает количество удалённых строк. Зависимые договоры, платежи
// и заявки на обслуживание удаляются каскадно на уровне схемы.
func (s *Storage) RemoveProperty(ctx context.Context, username string, id int) (int, error) {
	const op = "storage.RemoveProperty"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM properties
			  WHERE id = $1
			    AND owner_uid = (SELECT uid FROM users WHERE username = $2)`
	result, err := s.DB.ExecContext(ctx, query, id, username)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// CountPropertyStats возвращает количество объектов владельца всего,
// занятых и свободных.
func (s *Storage) CountPropertyStats(ctx context.Context, username string) (total, occupied, available int, err error) {
	const op = "storage.CountPropertyStats"
	select {
	case <-ctx.Done():
		return 0, 0, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COUNT(*),
			      COUNT(*) FILTER (WHERE p.status = 'occupied'),
			      COUNT(*) FILTER (WHERE p.status = 'available')
			  FROM properties p
			  JOIN users u ON u.uid = p.owner_uid
			  WHERE u.username = $1`
	if err := s.DB.QueryRowContext(ctx, query, username).Scan(&total, &occupied, &available); err != nil {
		return 0, 0, 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, occupied, available, nil
}
