package services

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/campusgrub/cafeteria-app/models"
	"github.com/campusgrub/cafeteria-app/utils"
)

// orderNumberAttempts bounds the retry loop on order-number collisions.
const orderNumberAttempts = 3

type OrderService struct {
	DB *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{DB: db}
}

// Checkout converts the student's cart into an order. Order, order items and
// the cart clear happen in one transaction; two checkouts racing on the same
// cart can never both consume the same rows (the loser rolls back and sees an
// empty cart). Payment capture is out of scope: the method is recorded and
// payment_status written as completed.
func (s *OrderService) Checkout(studentID uint, paymentMethod string) (*models.Order, error) {
	if paymentMethod == "" {
		paymentMethod = models.PaymentMethodUPI
	}
	if !models.ValidPaymentMethod(paymentMethod) {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrInvalidArgument, paymentMethod)
	}

	var orderID uint
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var entries []models.CartItem
		if err := tx.Preload("MenuItem").
			Where("student_id = ?", studentID).
			Find(&entries).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return ErrEmptyCart
		}

		totals := ComputeTotals(entries)

		order, err := createOrderRow(tx, studentID, paymentMethod, totals)
		if err != nil {
			return err
		}

		entryIDs := make([]uint, 0, len(entries))
		for _, e := range entries {
			item := models.OrderItem{
				OrderID:      order.ID,
				MenuItemID:   e.MenuItemID,
				Quantity:     e.Quantity,
				PriceAtOrder: e.MenuItem.Price,
				Subtotal:     e.MenuItem.Price * float64(e.Quantity),
			}
			if err := tx.Create(&item).Error; err != nil {
				// Rolls back the order row too; no order without items
				// ever becomes visible.
				return fmt.Errorf("%w: %v", ErrOrderCreationFailed, err)
			}
			entryIDs = append(entryIDs, e.ID)
		}

		res := tx.Where("student_id = ? AND id IN ?", studentID, entryIDs).
			Delete(&models.CartItem{})
		if res.Error != nil {
			// Non-fatal: the order stands, stale cart rows are consumed
			// by the next checkout attempt.
			utils.ErrorLogger.Printf("checkout: cart clear failed for student %d: %v", studentID, res.Error)
		} else if res.RowsAffected < int64(len(entryIDs)) {
			// A concurrent checkout already consumed some of these rows.
			return ErrEmptyCart
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	var order models.Order
	if err := s.DB.Preload("OrderItems").Preload("OrderItems.MenuItem").
		First(&order, orderID).Error; err != nil {
		return nil, err
	}

	s.notify(studentID, "Order placed",
		fmt.Sprintf("Order %s placed, total %.2f", order.OrderNumber, utils.RoundMoney(order.Total)))

	return &order, nil
}

// newOrderNumber generates a time-based order number with a random suffix.
var newOrderNumber = func() string {
	return fmt.Sprintf("ORD-%s-%04d", time.Now().Format("20060102150405"), rand.Intn(10000))
}

// createOrderRow inserts the order, retrying with a fresh order number when
// the unique index reports a collision. The insert itself is the uniqueness
// check; a pre-read cannot see numbers taken by concurrent transactions.
func createOrderRow(tx *gorm.DB, studentID uint, paymentMethod string, totals CartTotals) (*models.Order, error) {
	for i := 0; i < orderNumberAttempts; i++ {
		order := models.Order{
			OrderNumber:   newOrderNumber(),
			StudentID:     studentID,
			Status:        models.OrderStatusPending,
			Subtotal:      totals.Subtotal,
			Tax:           totals.Tax,
			Total:         totals.Total,
			PaymentMethod: paymentMethod,
			PaymentStatus: "completed",
		}
		err := tx.Create(&order).Error
		if err == nil {
			return &order, nil
		}
		if !isDuplicateKey(err) {
			return nil, fmt.Errorf("%w: %v", ErrOrderCreationFailed, err)
		}
	}
	return nil, fmt.Errorf("%w: could not allocate a unique order number", ErrConflict)
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint") || strings.Contains(msg, "Duplicate entry")
}

// UpdateStatus advances an order through the fulfillment lifecycle. Admin
// only. The write is a compare-and-set against the status the caller was
// shown; losing a race yields Conflict, never a silently skipped stage.
func (s *OrderService) UpdateStatus(orderID uint, newStatus, callerRole string) (*models.Order, error) {
	if callerRole != models.RoleAdmin {
		return nil, fmt.Errorf("%w: only admins may update order status", ErrPermissionDenied)
	}
	if !KnownStatus(newStatus) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, newStatus)
	}

	var order models.Order
	if err := s.DB.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return nil, err
	}

	if !CanTransition(order.Status, newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, newStatus)
	}

	updates := map[string]interface{}{
		"status":     newStatus,
		"updated_at": time.Now(),
	}
	if newStatus == models.OrderStatusCompleted {
		updates["completed_at"] = time.Now()
	}

	res := s.DB.Model(&models.Order{}).
		Where("id = ? AND status = ?", order.ID, order.Status).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: order %d changed status concurrently", ErrConflict, order.ID)
	}

	if err := s.DB.Preload("OrderItems").Preload("OrderItems.MenuItem").
		First(&order, order.ID).Error; err != nil {
		return nil, err
	}

	s.notify(order.StudentID, "Order update",
		fmt.Sprintf("Order %s is now %s", order.OrderNumber, order.Status))

	return &order, nil
}

// ListOrders returns the caller's orders (all orders for admins), newest
// first. An optional status filters the result.
func (s *OrderService) ListOrders(callerID uint, callerRole, status string) ([]models.Order, error) {
	q := s.DB.Preload("OrderItems").Preload("OrderItems.MenuItem").
		Order("created_at desc")
	if callerRole != models.RoleAdmin {
		q = q.Where("student_id = ?", callerID)
	}
	if status != "" {
		if !KnownStatus(status) {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, status)
		}
		q = q.Where("status = ?", status)
	}

	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder returns one order. Students only see their own; an order owned by
// someone else is simply not visible to them.
func (s *OrderService) GetOrder(callerID uint, callerRole string, orderID uint) (*models.Order, error) {
	var order models.Order
	if err := s.DB.Preload("OrderItems").Preload("OrderItems.MenuItem").
		First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return nil, err
	}
	if callerRole != models.RoleAdmin && order.StudentID != callerID {
		return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
	}
	return &order, nil
}

// notify records a best-effort audit row; failures are logged, never surfaced.
func (s *OrderService) notify(userID uint, title, message string) {
	notif := models.Notification{
		UserID:  &userID,
		Title:   &title,
		Message: message,
	}
	if err := s.DB.Create(&notif).Error; err != nil {
		utils.ErrorLogger.Printf("notification write failed: %v", err)
	}
}
