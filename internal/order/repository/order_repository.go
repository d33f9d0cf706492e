package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"palantir/internal/domain"
	"palantir/internal/errors"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

const orderColumns = `id, customerId, processStage, paymentStatus, totalAmount, createdAt, updatedAt`

// Create persists the order and all of its lines in one transaction. The
// returned order carries the repository-assigned ids and timestamps.
func (r *MySQLOrderRepository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	// MySQL ignores rollback after commit.
	defer tx.Rollback()

	now := time.Now().UTC().Truncate(time.Second)

	result, err := tx.ExecContext(ctx, `
		INSERT INTO Orders (customerId, processStage, paymentStatus, totalAmount, createdAt, updatedAt)
		VALUES (?, ?, ?, ?, ?, ?)`,
		order.CustomerID, order.ProcessStage, order.PaymentStatus, order.TotalAmount, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting order: %w", err)
	}

	orderID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting last insert id: %w", err)
	}

	lines := make([]domain.OrderLine, len(order.Lines))
	for i, line := range order.Lines {
		lineResult, err := tx.ExecContext(ctx, `
			INSERT INTO OrderLines (orderId, productId, quantity, unitPrice)
			VALUES (?, ?, ?, ?)`,
			orderID, line.ProductID, line.Quantity, line.UnitPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("inserting order line: %w", err)
		}

		lineID, err := lineResult.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("getting order line insert id: %w", err)
		}

		lines[i] = domain.OrderLine{
			ID:        uint(lineID),
			OrderID:   uint(orderID),
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing order creation: %w", err)
	}

	persisted := *order
	persisted.ID = uint(orderID)
	persisted.Lines = lines
	persisted.CreatedAt = now
	persisted.UpdatedAt = now

	return &persisted, nil
}

// FindByID loads the order aggregate: the order row plus all of its lines.
func (r *MySQLOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM Orders WHERE id = ?`, orderColumns)

	var order domain.Order
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID, &order.CustomerID, &order.ProcessStage, &order.PaymentStatus,
		&order.TotalAmount, &order.CreatedAt, &order.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(errors.ResourceOrder, fmt.Sprintf("order with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	lines, err := r.findLines(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Lines = lines

	return &order, nil
}

// Update persists the mutable order fields. Lines are immutable after
// creation and are not touched.
func (r *MySQLOrderRepository) Update(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE Orders SET processStage = ?, paymentStatus = ?, updatedAt = ? WHERE id = ?`,
		order.ProcessStage, order.PaymentStatus, order.UpdatedAt, order.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, errors.NewNotFoundError(errors.ResourceOrder, fmt.Sprintf("order with id %d not found", order.ID))
	}

	return order, nil
}

// Delete removes the order and cascades to its lines in one transaction.
func (r *MySQLOrderRepository) Delete(ctx context.Context, id uint) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM OrderLines WHERE orderId = ?`, id); err != nil {
		return fmt.Errorf("deleting order lines: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM Orders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(errors.ResourceOrder, fmt.Sprintf("order with id %d not found", id))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing order deletion: %w", err)
	}

	return nil
}

func (r *MySQLOrderRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM Orders ORDER BY id`, orderColumns)
	return r.findOrders(ctx, query)
}

func (r *MySQLOrderRepository) FindByStatus(ctx context.Context, stage domain.ProcessStage) ([]domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM Orders WHERE processStage = ? ORDER BY id`, orderColumns)
	return r.findOrders(ctx, query, stage)
}

func (r *MySQLOrderRepository) FindByPaymentStatus(ctx context.Context, status domain.PaymentStatus) ([]domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM Orders WHERE paymentStatus = ? ORDER BY id`, orderColumns)
	return r.findOrders(ctx, query, status)
}

func (r *MySQLOrderRepository) FindByCreatedBetween(ctx context.Context, from, to time.Time) ([]domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM Orders WHERE createdAt BETWEEN ? AND ? ORDER BY id`, orderColumns)
	return r.findOrders(ctx, query, from, to)
}

func (r *MySQLOrderRepository) FindByUpdatedBetween(ctx context.Context, from, to time.Time) ([]domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM Orders WHERE updatedAt BETWEEN ? AND ? ORDER BY id`, orderColumns)
	return r.findOrders(ctx, query, from, to)
}

func (r *MySQLOrderRepository) findOrders(ctx context.Context, query string, args ...interface{}) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var order domain.Order
		err := rows.Scan(
			&order.ID, &order.CustomerID, &order.ProcessStage, &order.PaymentStatus,
			&order.TotalAmount, &order.CreatedAt, &order.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	for i := range orders {
		lines, err := r.findLines(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Lines = lines
	}

	return orders, nil
}

func (r *MySQLOrderRepository) findLines(ctx context.Context, orderID uint) ([]domain.OrderLine, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, orderId, productId, quantity, unitPrice
		FROM OrderLines
		WHERE orderId = ?
		ORDER BY id`, orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying order lines: %w", err)
	}
	defer rows.Close()

	lines := []domain.OrderLine{}
	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(&line.ID, &line.OrderID, &line.ProductID, &line.Quantity, &line.UnitPrice); err != nil {
			return nil, fmt.Errorf("scanning order line row: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order line rows: %w", err)
	}

	return lines, nil
}
