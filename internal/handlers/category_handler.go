package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/evandrht/festipass/internal/helpers"
	"github.com/evandrht/festipass/internal/services"
)

type CategoryUpdateRequest struct {
	MaxCount *int             `json:"max_count" binding:"omitempty,min=0"`
	Price    *decimal.Decimal `json:"price"`
}

// UpdateTicketCategory is the administrative correction path for price and
// remaining count. It deliberately does not share code with the purchase
// decrement.
func UpdateTicketCategory(c *gin.Context) {
	categoryID, err := helpers.ParamUUID(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "invalid ticket category id provided!")
		return
	}

	var req CategoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	category, err := services.NewCategoryService(gormDB).Update(c.Request.Context(), categoryID, req.MaxCount, req.Price)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCategory) {
			helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update ticket category.")
		return
	}

	helpers.RespondWithData(c, http.StatusOK, "ticket category updated successfully", category)
}
