package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/campusgrub/cafeteria-app/services"
	"github.com/campusgrub/cafeteria-app/utils"
)

type CartController struct {
	Carts *services.CartService
}

func NewCartController(db *gorm.DB) *CartController {
	return &CartController{Carts: services.NewCartService(db)}
}

// GetCart -> entries plus computed totals, rounded for display.
func (cc *CartController) GetCart(c *gin.Context) {
	userID, _, ok := callerFromContext(c)
	if !ok {
		return
	}

	entries, totals, err := cc.Carts.GetCart(userID)
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cart contents", gin.H{
		"entries": entries,
		"totals": gin.H{
			"subtotal": utils.RoundMoney(totals.Subtotal),
			"tax":      utils.RoundMoney(totals.Tax),
			"total":    utils.RoundMoney(totals.Total),
		},
	})
}

// AddToCart adds one unit of a menu item; repeat adds accumulate quantity.
func (cc *CartController) AddToCart(c *gin.Context) {
	userID, _, ok := callerFromContext(c)
	if !ok {
		return
	}

	var req struct {
		MenuItemID uint `json:"menu_item_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	entry, err := cc.Carts.AddItem(userID, req.MenuItemID)
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Item added to cart", entry)
}

// UpdateQuantity sets an entry's quantity; anything below 1 is rejected.
func (cc *CartController) UpdateQuantity(c *gin.Context) {
	userID, _, ok := callerFromContext(c)
	if !ok {
		return
	}

	entryID, _ := strconv.Atoi(c.Param("entry_id"))

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	entry, err := cc.Carts.UpdateQuantity(userID, uint(entryID), req.Quantity)
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cart entry updated", entry)
}

// RemoveFromCart deletes an entry owned by the caller.
func (cc *CartController) RemoveFromCart(c *gin.Context) {
	userID, _, ok := callerFromContext(c)
	if !ok {
		return
	}

	entryID, _ := strconv.Atoi(c.Param("entry_id"))

	if err := cc.Carts.RemoveItem(userID, uint(entryID)); err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cart entry removed", gin.H{"entry_id": entryID})
}
