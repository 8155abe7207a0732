package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/rental-manager/internal/models"
)

const maintenanceColumns = `m.id, m.property_id, m.tenant_id, p.title,
			      tu.first_name || ' ' || tu.last_name,
			      m.title, m.description, m.status, m.priority,
			      m.request_date, m.scheduled_date, m.completion_date,
			      m.cost, m.notes, m.created_at, m.updated_at`

const maintenanceJoins = `FROM maintenance_requests m
			  JOIN properties p ON p.id = m.property_id
			  JOIN users ou ON ou.uid = p.owner_uid
			  JOIN tenants t ON t.id = m.tenant_id
			  JOIN users tu ON tu.uid = t.user_uid`

func scanMaintenance(row interface{ Scan(...any) error }) (*models.Maintenance, error) {
	var item models.Maintenance
	var scheduledDate, completionDate sql.NullTime
	var cost sql.NullFloat64
	var notes sql.NullString
	if err := row.Scan(&item.ID, &item.PropertyID, &item.TenantID, &item.PropertyTitle,
		&item.TenantName,
		&item.Title, &item.Description, &item.Status, &item.Priority,
		&item.RequestDate, &scheduledDate, &completionDate,
		&cost, &notes, &item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, err
	}
	if scheduledDate.Valid {
		item.ScheduledDate = &scheduledDate.Time
	}
	if completionDate.Valid {
		item.CompletionDate = &completionDate.Time
	}
	if cost.Valid {
		item.Cost = &cost.Float64
	}
	if notes.Valid {
		item.Notes = &notes.String
	}
	return &item, nil
}

// CreateMaintenance вставляет новую заявку на обслуживание и возвращает её ID.
func (s *Storage) CreateMaintenance(ctx context.Context, m models.Maintenance) (int, error) {
	const op = "storage.CreateMaintenance"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO maintenance_requests (property_id, tenant_id, title, description,
			      status, priority, request_date, scheduled_date, completion_date, cost, notes)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		m.PropertyID, m.TenantID, m.Title, m.Description,
		m.Status, m.Priority, m.RequestDate, m.ScheduledDate, m.CompletionDate,
		m.Cost, m.Notes).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListMaintenance возвращает заявки по объектам владельца с пагинацией.
func (s *Storage) ListMaintenance(ctx context.Context, username string, limit, offset int) ([]*models.Maintenance, error) {
	const op = "storage.ListMaintenance"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + maintenanceColumns + `
			  ` + maintenanceJoins + `
			  WHERE ou.username = $1
			  ORDER BY m.id
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, username, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []*models.Maintenance
	for rows.Next() {
		item, err := scanMaintenance(rows)
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

// ReadMaintenance возвращает заявку по её ID из видимого набора владельца.
func (s *Storage) ReadMaintenance(ctx context.Context, username string, id int) (*models.Maintenance, error) {
	const op = "storage.ReadMaintenance"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + maintenanceColumns + `
			  ` + maintenanceJoins + `
			  WHERE ou.username = $1 AND m.id = $2`
	item, err := scanMaintenance(s.DB.QueryRowContext(ctx, query, username, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}

// UpdateMaintenance обновляет заявку из видимого набора владельца
// и возвращает количество изменённых строк. Дата создания заявки
// (request_date) при обновлении не меняется.
func (s *Storage) UpdateMaintenance(ctx context.Context, username string, id int, m models.Maintenance) (int, error) {
	const op = "storage.UpdateMaintenance"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE maintenance_requests
			  SET property_id = $1, tenant_id = $2, title = $3, description = $4,
			      status = $5, priority = $6, scheduled_date = $7, completion_date = $8,
			      cost = $9, notes = $10, updated_at = now()
			  WHERE id = $11
			    AND property_id IN (
			      SELECT p.id FROM properties p
			      JOIN users ou ON ou.uid = p.owner_uid
			      WHERE ou.username = $12)`
	result, err := s.DB.ExecContext(ctx, query,
		m.PropertyID, m.TenantID, m.Title, m.Description,
		m.Status, m.Priority, m.ScheduledDate, m.CompletionDate,
		m.Cost, m.Notes, id, username)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveMaintenance удаляет заявку из видимого набора владельца
// и возвращает количество удалённых строк.
func (s *Storage) RemoveMaintenance(ctx context.Context, username string, id int) (int, error) {
	const op = "storage.RemoveMaintenance"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM maintenance_requests
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
