package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/rental-manager/internal/models"
)

const tenantColumns = `t.id, tu.uid, tu.username, tu.email, tu.first_name, tu.last_name,
			      t.phone, t.emergency_contact, t.emergency_phone, t.created_at, t.updated_at`

// ownedTenantCondition ограничивает арендаторов теми, кто связан договором
// с объектом недвижимости текущего владельца.
const ownedTenantCondition = `EXISTS (
			      SELECT 1 FROM leases l
			      JOIN properties p ON p.id = l.property_id
			      JOIN users ou ON ou.uid = p.owner_uid
			      WHERE l.tenant_id = t.id AND ou.username = $1)`

func scanTenant(row interface{ Scan(...any) error }) (*models.Tenant, error) {
	var item models.Tenant
	var emergencyContact, emergencyPhone sql.NullString
	if err := row.Scan(&item.ID, &item.User.UUID, &item.User.Username, &item.User.Email,
		&item.User.FirstName, &item.User.LastName,
		&item.Phone, &emergencyContact, &emergencyPhone,
		&item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, err
	}
	if emergencyContact.Valid {
		item.EmergencyContact = &emergencyContact.String
	}
	if emergencyPhone.Valid {
		item.EmergencyPhone = &emergencyPhone.String
	}
	return &item, nil
}

// CreateTenant создаёт профиль арендатора, привязанный к существующему
// пользователю по его username, и возвращает ID профиля.
func (s *Storage) CreateTenant(ctx context.Context, tenantUsername string, t models.Tenant) (int, error) {
	const op = "storage.CreateTenant"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO tenants (user_uid, phone, emergency_contact, emergency_phone)
			  VALUES ((SELECT uid FROM users WHERE username = $1), $2, $3, $4)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		tenantUsername, t.Phone, t.EmergencyContact, t.EmergencyPhone).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListTenants возвращает арендаторов, связанных договором с объектами
// недвижимости владельца, с пагинацией.
func (s *Storage) ListTenants(ctx context.Context, username string, limit, offset int) ([]*models.Tenant, error) {
	const op = "storage.ListTenants"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + tenantColumns + `
			  FROM tenants t
			  JOIN users tu ON tu.uid = t.user_uid
			  WHERE ` + ownedTenantCondition + `
			  ORDER BY t.id
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, username, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []*models.Tenant
	for rows.Next() {
		item, err := scanTenant(rows)
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

// ReadTenant возвращает профиль арендатора по его ID из видимого набора владельца.
func (s *Storage) ReadTenant(ctx context.Context, username string, id int) (*models.Tenant, error) {
	const op = "storage.ReadTenant"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + tenantColumns + `
			  FROM tenants t
			  JOIN users tu ON tu.uid = t.user_uid
			  WHERE t.id = $2 AND ` + ownedTenantCondition
	item, err := scanTenant(s.DB.QueryRowContext(ctx, query, username, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}

// UpdateTenant обновляет профиль арендатора из видимого набора владельца
// и возвращает количество изменённых строк.
func (s *Storage) UpdateTenant(ctx context.Context, username string, id int, t models.Tenant) (int, error) {
	const op = "storage.UpdateTenant"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE tenants t
			  SET phone = $2, emergency_contact = $3, emergency_phone = $4, updated_at = now()
			  WHERE t.id = $5 AND ` + ownedTenantCondition
	result, err := s.DB.ExecContext(ctx, query,
		username, t.Phone, t.EmergencyContact, t.EmergencyPhone, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveTenant удаляет профиль арендатора из видимого набора владельца
// и возвращает количество удалённых строк. Договоры и заявки арендатора
// удаляются каскадно на уровне схемы.
func (s *Storage) RemoveTenant(ctx context.Context, username string, id int) (int, error) {
	const op = "storage.RemoveTenant"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM tenants t
			  WHERE t.id = $2 AND ` + ownedTenantCondition
	result, err := s.DB.ExecContext(ctx, query, username, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
