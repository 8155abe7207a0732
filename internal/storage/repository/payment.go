package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/rental-manager/internal/models"
)

const paymentColumns = `pay.id, pay.lease_id, p.title,
			      tu.first_name || ' ' || tu.last_name,
			      pay.amount, pay.due_date, pay.payment_date, pay.status,
			      pay.payment_method, pay.reference, pay.notes,
			      pay.created_at, pay.updated_at`

const paymentJoins = `FROM payments pay
			  JOIN leases l ON l.id = pay.lease_id
			  JOIN properties p ON p.id = l.property_id
			  JOIN users ou ON ou.uid = p.owner_uid
			  JOIN tenants t ON t.id = l.tenant_id
			  JOIN users tu ON tu.uid = t.user_uid`

func scanPayment(row interface{ Scan(...any) error }) (*models.Payment, error) {
	var item models.Payment
	var paymentDate sql.NullTime
	var method, reference, notes sql.NullString
	if err := row.Scan(&item.ID, &item.LeaseID, &item.PropertyTitle, &item.TenantName,
		&item.Amount, &item.DueDate, &paymentDate, &item.Status,
		&method, &reference, &notes,
		&item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, err
	}
	if paymentDate.Valid {
		item.PaymentDate = &paymentDate.Time
	}
	if method.Valid {
		m := models.PaymentMethod(method.String)
		item.PaymentMethod = &m
	}
	if reference.Valid {
		item.Reference = &reference.String
	}
	if notes.Valid {
		item.Notes = &notes.String
	}
	return &item, nil
}

func (s *Storage) queryPayments(ctx context.Context, op, query string, args ...any) ([]*models.Payment, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []*models.Payment
	for rows.Next() {
		item, err := scanPayment(rows)
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

// CreatePayment вставляет новый платёж по договору и возвращает его ID.
func (s *Storage) CreatePayment(ctx context.Context, pay models.Payment) (int, error) {
	const op = "storage.CreatePayment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO payments (lease_id, amount, due_date, payment_date,
			      status, payment_method, reference, notes)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		pay.LeaseID, pay.Amount, pay.DueDate, pay.PaymentDate,
		pay.Status, pay.PaymentMethod, pay.Reference, pay.Notes).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListPayments возвращает платежи по договорам владельца с пагинацией.
func (s *Storage) ListPayments(ctx context.Context, username string, limit, offset int) ([]*models.Payment, error) {
	const op = "storage.ListPayments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + paymentColumns + `
			  ` + paymentJoins + `
			  WHERE ou.username = $1
			  ORDER BY pay.id
			  LIMIT $2 OFFSET $3`
	return s.queryPayments(ctx, op, query, username, limit, offset)
}

// ReadPayment возвращает платёж по его ID из видимого набора владельца.
func (s *Storage) ReadPayment(ctx context.Context, username string, id int) (*models.Payment, error) {
	const op = "storage.ReadPayment"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + paymentColumns + `
			  ` + paymentJoins + `
			  WHERE ou.username = $1 AND pay.id = $2`
	item, err := scanPayment(s.DB.QueryRowContext(ctx, query, username, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}

// UpdatePayment обновляет платёж из видимого набора владельца
// и возвращает количество изменённых строк.
func (s *Storage) UpdatePayment(ctx context.Context, username string, id int, pay models.Payment) (int, error) {
	const op = "storage.UpdatePayment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE payments
			  SET lease_id = $1, amount = $2, due_date = $3, payment_date = $4,
			      status = $5, payment_method = $6, reference = $7, notes = $8,
			      updated_at = now()
			  WHERE id = $9
			    AND lease_id IN (
			      SELECT l.id FROM leases l
			      JOIN properties p ON p.id = l.property_id
			      JOIN users ou ON ou.uid = p.owner_uid
			      WHERE ou.username = $10)`
	result, err := s.DB.ExecContext(ctx, query,
		pay.LeaseID, pay.Amount, pay.DueDate, pay.PaymentDate,
		pay.Status, pay.PaymentMethod, pay.Reference, pay.Notes, id, username)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemovePayment удаляет платёж из видимого набора владельца
// и возвращает количество удалённых строк.
func (s *Storage) RemovePayment(ctx context.Context, username string, id int) (int, error) {
	const op = "storage.RemovePayment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM payments
			  WHERE id = $1
			    AND lease_id IN (
			      SELECT l.id FROM leases l
			      JOIN properties p ON p.id = l.property_id
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

// ListOverduePayments возвращает ожидающие платежи владельца со сроком
// строго раньше опорной даты.
func (s *Storage) ListOverduePayments(ctx context.Context, username string, today time.Time) ([]*models.Payment, error) {
	const op = "storage.ListOverduePayments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + paymentColumns + `
			  ` + paymentJoins + `
			  WHERE ou.username = $1
			    AND pay.status = 'pending'
			    AND pay.due_date < $2
			  ORDER BY pay.due_date, pay.id`
	return s.queryPayments(ctx, op, query, username, today)
}

// ListUpcomingPayments возвращает ожидающие платежи владельца со сроком
// в интервале [from, to] включительно.
func (s *Storage) ListUpcomingPayments(ctx context.Context, username string, from, to time.Time) ([]*models.Payment, error) {
	const op = "storage.ListUpcomingPayments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + paymentColumns + `
			  ` + paymentJoins + `
			  WHERE ou.username = $1
			    AND pay.status = 'pending'
			    AND pay.due_date >= $2
			    AND pay.due_date <= $3
			  ORDER BY pay.due_date, pay.id`
	return s.queryPayments(ctx, op, query, username, from, to)
}

// SumMonthlyIncome возвращает суммы проведённых платежей владельца,
// сгруппированные по месяцу даты платежа, за интервал [yearStart, yearEnd).
// Месяцы без платежей в выборку не попадают: нулевое заполнение
// выполняет сервисный слой.
func (s *Storage) SumMonthlyIncome(ctx context.Context, username string, yearStart, yearEnd time.Time) ([]models.MonthlyIncome, error) {
	const op = "storage.SumMonthlyIncome"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT EXTRACT(MONTH FROM pay.payment_date)::int AS month,
			      COALESCE(SUM(pay.amount), 0) AS total
			  FROM payments pay
			  JOIN leases l ON l.id = pay.lease_id
			  JOIN properties p ON p.id = l.property_id
			  JOIN users ou ON ou.uid = p.owner_uid
			  WHERE ou.username = $1
			    AND pay.status = 'paid'
			    AND pay.payment_date >= $2
			    AND pay.payment_date < $3
			  GROUP BY month
			  ORDER BY month`
	rows, err := s.DB.QueryContext(ctx, query, username, yearStart, yearEnd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []models.MonthlyIncome
	for rows.Next() {
		var item models.MonthlyIncome
		if err := rows.Scan(&item.Month, &item.Total); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
