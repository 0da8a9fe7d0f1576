package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"github.com/evandrht/festipass/internal/helpers"
	"github.com/evandrht/festipass/internal/models"
	"github.com/evandrht/festipass/internal/services"
)

type PurchaseRequest struct {
	TicketCategoryID uuid.UUID `json:"ticket_category_id" binding:"required"`
	UserID           uuid.UUID `json:"user_id" binding:"required"`
}

// PurchaseTicket reserves one ticket for the authenticated buyer. The body
// carries the buyer id for contract compatibility, but it must match the
// token identity; the orchestrator only ever sees a trusted buyer id.
func PurchaseTicket(c *gin.Context) {
	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}
	if req.UserID != userID.(uuid.UUID) {
		helpers.RespondWithError(c, http.StatusForbidden, "You can only purchase tickets for yourself.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	ticket, err := services.NewPurchaseService(gormDB).Purchase(c.Request.Context(), req.TicketCategoryID, req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAlreadyPurchased),
			errors.Is(err, services.ErrInvalidCategory),
			errors.Is(err, services.ErrSoldOut):
			helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		default:
			helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to purchase ticket.")
		}
		return
	}

	helpers.RespondWithData(c, http.StatusOK, "ticket purchase success", ticket)
}

func GetEventTickets(c *gin.Context) {
	eventID, err := helpers.ParamUUID(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	tickets, err := services.NewTicketService(gormDB).FindByEvent(c.Request.Context(), eventID)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving event tickets.")
		return
	}

	helpers.RespondWithData(c, http.StatusOK, "get event tickets success", tickets)
}

func GetUserPurchasedTickets(c *gin.Context) {
	userID, err := helpers.ParamUUID(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid user ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	tickets, err := services.NewTicketService(gormDB).FindByUser(c.Request.Context(), userID)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving purchased tickets.")
		return
	}

	helpers.RespondWithData(c, http.StatusOK, "get purchased tickets success", tickets)
}

func ticketSignature(ticket *models.Ticket, secretKey string) string {
	data := fmt.Sprintf("%s:%s:%s", ticket.ID, ticket.TicketCategoryID, ticket.UserID)
	h := hmac.New(sha256.New, []byte(secretKey))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

func ticketQRData(ticket *models.Ticket) string {
	signature := ticketSignature(ticket, os.Getenv("JWT_SECRET"))
	return fmt.Sprintf("ticket:%s;event:%s;category:%s;signature:%s",
		ticket.ID, ticket.EventID, ticket.TicketCategoryID, signature)
}

// GenerateTicketQR renders a signed QR image for a purchased ticket, for
// presentation at the venue. Only the ticket owner may generate it.
func GenerateTicketQR(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User not authenticated.")
		return
	}

	ticketID, err := helpers.ParamUUID(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid ticket ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	ticket, err := services.NewTicketService(gormDB).FindByID(c.Request.Context(), ticketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Ticket not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving ticket.")
		return
	}

	if ticket.UserID != userID.(uuid.UUID) {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to generate a QR code for this ticket.")
		return
	}

	qrImage, err := qrcode.Encode(ticketQRData(ticket), qrcode.Medium, 256)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate QR code.")
		return
	}

	c.Data(http.StatusOK, "image/png", qrImage)
}
