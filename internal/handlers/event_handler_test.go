package handlers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evandrht/festipass/internal/models"
)

func TestCreateEventWithCategories(t *testing.T) {
	db := setupTestDB(t)
	organizer := seedUser(t, db)
	r := newTestRouter(db, organizer.ID)

	w := doJSON(t, r, http.MethodPost, "/v1/events", map[string]interface{}{
		"name":        "Jazz Night",
		"description": "late night jazz",
		"start_time":  time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		"end_time":    time.Now().Add(52 * time.Hour).Format(time.RFC3339),
		"venue":       "Blue Room",
		"ticket_categories": []map[string]interface{}{
			{"category": "VIP", "max_count": 10, "price": 150},
			{"category": "General Admissions", "max_count": 80, "price": 45.5},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.EqualValues(t, 1, body["status"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Jazz Night", data["name"])
	assert.Equal(t, organizer.ID.String(), data["createdBy"])
	assert.Len(t, data["ticketCategories"], 2)

	var count int64
	require.NoError(t, db.Model(&models.TicketCategory{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestCreateEventRejectsBadTimeWindow(t *testing.T) {
	db := setupTestDB(t)
	organizer := seedUser(t, db)
	r := newTestRouter(db, organizer.ID)

	w := doJSON(t, r, http.MethodPost, "/v1/events", map[string]interface{}{
		"name":       "Backwards",
		"start_time": time.Now().Add(52 * time.Hour).Format(time.RFC3339),
		"end_time":   time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		"venue":      "Nowhere",
		"ticket_categories": []map[string]interface{}{
			{"category": "VIP", "max_count": 10, "price": 150},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateEventRejectsUnknownCategoryLabel(t *testing.T) {
	db := setupTestDB(t)
	organizer := seedUser(t, db)
	r := newTestRouter(db, organizer.ID)

	w := doJSON(t, r, http.MethodPost, "/v1/events", map[string]interface{}{
		"name":       "Mystery",
		"start_time": time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		"end_time":   time.Now().Add(52 * time.Hour).Format(time.RFC3339),
		"venue":      "Somewhere",
		"ticket_categories": []map[string]interface{}{
			{"category": "Platinum", "max_count": 10, "price": 150},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListEventsNameFilter(t *testing.T) {
	db := setupTestDB(t)
	organizer := seedUser(t, db)
	seedEvent(t, db, organizer.ID)
	second := models.Event{
		Name:      "Winter Gala",
		StartTime: time.Now().Add(24 * time.Hour),
		EndTime:   time.Now().Add(30 * time.Hour),
		Venue:     "Grand Hall",
		CreatedBy: organizer.ID,
	}
	require.NoError(t, db.Create(&second).Error)
	r := newTestRouter(db, organizer.ID)

	w := doJSON(t, r, http.MethodGet, "/v1/events?name=winter", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	data := body["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, "Winter Gala", data[0].(map[string]interface{})["name"])

	w = doJSON(t, r, http.MethodGet, "/v1/events", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.Len(t, body["data"], 2)
	assert.EqualValues(t, 2, body["total"])
}

func TestGetEventDetailIncludesCategories(t *testing.T) {
	db := setupTestDB(t)
	organizer := seedUser(t, db)
	event := seedEvent(t, db, organizer.ID)
	seedCategory(t, db, event.ID, 10)
	r := newTestRouter(db, organizer.ID)

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/v1/events/%s", event.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	assert.Len(t, data["ticketCategories"], 1)
}

func TestUpdateEventOwnershipEnforced(t *testing.T) {
	db := setupTestDB(t)
	organizer := seedUser(t, db)
	intruder := seedUser(t, db)
	event := seedEvent(t, db, organizer.ID)

	r := newTestRouter(db, intruder.ID)
	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/v1/events/%s", event.ID), map[string]interface{}{
		"name": "Hijacked",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	r = newTestRouter(db, organizer.ID)
	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/v1/events/%s", event.ID), map[string]interface{}{
		"name": "Renamed Fest",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Event
	require.NoError(t, db.Where("id = ?", event.ID).First(&updated).Error)
	assert.Equal(t, "Renamed Fest", updated.Name)
}

func TestUpdateTicketCategoryEndpoint(t *testing.T) {
	db := setupTestDB(t)
	organizer := seedUser(t, db)
	event := seedEvent(t, db, organizer.ID)
	category := seedCategory(t, db, event.ID, 10)
	r := newTestRouter(db, organizer.ID)

	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/v1/ticket-categories/%s", category.ID), map[string]interface{}{
		"max_count": 40,
		"price":     99.99,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated models.TicketCategory
	require.NoError(t, db.Where("id = ?", category.ID).First(&updated).Error)
	assert.Equal(t, 40, updated.MaxCount)
	assert.Equal(t, "99.99", updated.Price.StringFixed(2))
}
