package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/rental-manager/internal/models"
)

const leaseColumns = `l.id, l.property_id, l.tenant_id, p.title,
			      tu.first_name || ' ' || tu.last_name,
			      l.start_date, l.end_date, l.rent_amount, l.security_deposit,
			      l.status, l.notes, l.created_at, l.updated_at`

const leaseJoins = `FROM leases l
			  JOIN properties p ON p.id = l.property_id
			  JOIN users ou ON ou.uid = p.owner_uid
			  JOIN tenants t ON t.id = l.tenant_id
			  JOIN users tu ON tu.uid = t.user_uid`

func scanLease(row interface{ Scan(...any) error }) (*models.Lease, error) {
	var item models.Lease
	var notes sql.NullString
	if err := row.Scan(&item.ID, &item.PropertyID, &item.TenantID, &item.PropertyTitle,
		&item.TenantName,
		&item.StartDate, &item.EndDate, &item.RentAmount, &item.SecurityDeposit,
		&item.Status, &notes, &item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, err
	}
	if notes.Valid {
		item.Notes = &notes.String
	}
	return &item, nil
}

// CreateLease вставляет новый договор аренды и возвращает его ID.
func (s *Storage) CreateLease(ctx context.Context, l models.Lease) (int, error) {
	const op = "storage.CreateLease"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO leases (property_id, tenant_id, start_date, end_date,
			      rent_amount, security_deposit, status, notes)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		l.PropertyID, l.TenantID, l.StartDate, l.EndDate,
		l.RentAmount, l.SecurityDeposit, l.Status, l.Notes).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListLeases возвращает договоры аренды по объектам владельца с пагинацией.
func (s *Storage) ListLeases(ctx context.Context, username string, limit, offset int) ([]*models.Lease, error) {
	const op = "storage.ListLeases"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + leaseColumns + `
			  ` + leaseJoins + `
			  WHERE ou.username = $1
			  ORDER BY l.id
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, username, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []*models.Lease
	for rows.Next() {
		item, err := scanLease(rows)
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

// ReadLease возвращает договор аренды по его ID из видимого набора владельца.
func (s *Storage) ReadLease(ctx context.Context, username string, id int) (*models.Lease, error) {
	const op = "storage.ReadLease"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + leaseColumns + `
			  ` + leaseJoins + `
			  WHERE ou.username = $1 AND l.id = $2`
	item, err := scanLease(s.DB.QueryRowContext(ctx, query, username, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}

// UpdateLease обновляет договор аренды из видимого набора владельца
// и возвращает количество изменённых строк.
func (s *Storage) UpdateLease(ctx context.Context, username string, id int, l models.Lease) (int, error) {
	const op = "storage.UpdateLease"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE leases
			  SET property_id = $1, tenant_id = $2, start_date = $3, end_date = $4,
			      rent_amount = $5, security_deposit = $6, status = $7, notes = $8,
			      updated_at = now()
			  WHERE id = $9
			    AND property_id IN (
			      SELECT p.id FROM properties p
			      JOIN users ou ON ou.uid = p.owner_uid
			      WHERE ou.username = $10)`
	result, err := s.DB.ExecContext(ctx, query,
		l.PropertyID, l.TenantID, l.StartDate, l.EndDate,
		l.RentAmount, l.SecurityDeposit, l.Status, l.Notes, id, username)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveLease удаляет договор аренды из видимого набора владельца
// и возвращает количество удалённых строк. Платежи по договору удаляются
// каскадно на уровне схемы.
func (s *Storage) RemoveLease(ctx context.Context, username string, id int) (int, error) {
	const op = "storage.RemoveLease"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM leases
			  WHERE id = $1
			    AND property_id IN (
			      SELECT p.id FROM properties p
			      JOIN users ou ON ou.uid = p.owner_uid
			      WHERE ou.username = $2)`
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

// ListExpiringLeases возвращает активные договоры владельца с датой
// окончания в интервале [from, to] включительно.
func (s *Storage) ListExpiringLeases(ctx context.Context, username string, from, to time.Time) ([]*models.Lease, error) {
	const op = "storage.ListExpiringLeases"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + leaseColumns + `
			  ` + leaseJoins + `
			  WHERE ou.username = $1
			    AND l.status = 'active'
			    AND l.end_date >= $2
			    AND l.end_date <= $3
			  ORDER BY l.end_date, l.id`
	rows, err := s.DB.QueryContext(ctx, query, username, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []*models.Lease
	for rows.Next() {
		item, err := scanLease(rows)
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
