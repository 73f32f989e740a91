package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/campusgrub/cafeteria-app/services"
	"github.com/campusgrub/cafeteria-app/utils"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{Orders: services.NewOrderService(db)}
}

// Checkout turns the caller's cart into an order.
func (oc *OrderController) Checkout(c *gin.Context) {
	userID, _, ok := callerFromContext(c)
	if !ok {
		return
	}

	var req struct {
		PaymentMethod string `json:"payment_method"`
	}
	// Body is optional; payment method defaults to upi.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
	}

	order, err := oc.Orders.Checkout(userID, req.PaymentMethod)
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}

	utils.InfoLogger.Printf("Order %s placed by user %d (total %.2f)",
		order.OrderNumber, userID, order.Total)

	utils.RespondJSON(c, http.StatusCreated, "Order placed", order)
}

// ListOrders -> own orders for students, all orders for admins, newest first.
func (oc *OrderController) ListOrders(c *gin.Context) {
	userID, role, ok := callerFromContext(c)
	if !ok {
		return
	}

	orders, err := oc.Orders.ListOrders(userID, role, c.Query("status"))
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	userID, role, ok := callerFromContext(c)
	if !ok {
		return
	}

	orderID, _ := strconv.Atoi(c.Param("order_id"))

	order, err := oc.Orders.GetOrder(userID, role, uint(orderID))
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// UpdateOrderStatus advances the fulfillment state machine (admin only; the
// service re-validates role and transition against the persisted status).
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	_, role, ok := callerFromContext(c)
	if !ok {
		return
	}

	orderID, _ := strconv.Atoi(c.Param("order_id"))

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Orders.UpdateStatus(uint(orderID), req.Status, role)
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}

	utils.InfoLogger.Printf("Order %s -> %s", order.OrderNumber, order.Status)

	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}
