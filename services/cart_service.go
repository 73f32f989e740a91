package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/campusgrub/cafeteria-app/models"
)

// TaxRate is the flat tax applied on the cart subtotal at checkout.
const TaxRate = 0.05

type CartService struct {
	DB *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{DB: db}
}

type CartTotals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// ComputeTotals sums unit price x quantity over the given entries and applies
// the tax rate. Pure function; full precision is kept, callers round for
// display only.
func ComputeTotals(entries []models.CartItem) CartTotals {
	var subtotal float64
	for _, e := range entries {
		subtotal += e.MenuItem.Price * float64(e.Quantity)
	}
	tax := subtotal * TaxRate
	return CartTotals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}

// AddItem adds one unit of a menu item to the student's cart. Repeat calls
// accumulate quantity; the increment is a single UPDATE so concurrent adds
// never lose updates.
func (s *CartService) AddItem(studentID, menuItemID uint) (*models.CartItem, error) {
	var item models.MenuItem
	if err := s.DB.First(&item, menuItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: menu item %d", ErrNotFound, menuItemID)
		}
		return nil, err
	}
	if !item.IsAvailable {
		return nil, fmt.Errorf("%w: menu item %d is not available", ErrNotFound, menuItemID)
	}

	for attempt := 0; attempt < 2; attempt++ {
		res := s.DB.Model(&models.CartItem{}).
			Where("student_id = ? AND menu_item_id = ?", studentID, menuItemID).
			UpdateColumn("quantity", gorm.Expr("quantity + ?", 1))
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected > 0 {
			break
		}

		entry := models.CartItem{
			StudentID:  studentID,
			MenuItemID: menuItemID,
			Quantity:   1,
		}
		err := s.DB.Create(&entry).Error
		if err == nil {
			break
		}
		// A concurrent add created the row first; the unique index on
		// (student_id, menu_item_id) fired. Retry as an increment.
		if attempt == 1 {
			return nil, err
		}
	}

	var entry models.CartItem
	if err := s.DB.Preload("MenuItem").
		Where("student_id = ? AND menu_item_id = ?", studentID, menuItemID).
		First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateQuantity sets the quantity of a cart entry. Quantities below 1 are
// rejected; removal is an explicit RemoveItem call.
func (s *CartService) UpdateQuantity(studentID, entryID uint, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidArgument)
	}

	var entry models.CartItem
	if err := s.DB.First(&entry, entryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: cart entry %d", ErrNotFound, entryID)
		}
		return nil, err
	}
	if entry.StudentID != studentID {
		return nil, fmt.Errorf("%w: cart entry belongs to another student", ErrPermissionDenied)
	}

	if err := s.DB.Model(&entry).UpdateColumn("quantity", quantity).Error; err != nil {
		return nil, err
	}

	if err := s.DB.Preload("MenuItem").First(&entry, entryID).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// RemoveItem deletes a cart entry owned by the student.
func (s *CartService) RemoveItem(studentID, entryID uint) error {
	var entry models.CartItem
	if err := s.DB.First(&entry, entryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: cart entry %d", ErrNotFound, entryID)
		}
		return err
	}
	if entry.StudentID != studentID {
		return fmt.Errorf("%w: cart entry belongs to another student", ErrPermissionDenied)
	}

	return s.DB.Delete(&models.CartItem{}, entry.ID).Error
}

// GetCart returns the student's cart entries with live menu prices and the
// computed totals.
func (s *CartService) GetCart(studentID uint) ([]models.CartItem, CartTotals, error) {
	var entries []models.CartItem
	if err := s.DB.Preload("MenuItem").
		Where("student_id = ?", studentID).
		Order("created_at asc").
		Find(&entries).Error; err != nil {
		return nil, CartTotals{}, err
	}
	return entries, ComputeTotals(entries), nil
}
