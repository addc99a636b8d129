package controllers

import (
	"encoding/json"
	"log"
	"strconv"
	"time"

	"plastiwood-backend/database"
	"plastiwood-backend/models"

	"github.com/gofiber/fiber/v2"
)

const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// logActivity appends a row to the activity feed. Best effort: a failed
// write is logged and never fails the request that caused it.
func logActivity(c *fiber.Ctx, action, entity, entityID string, payload any) {
	userID, _ := c.Locals("userID").(string)
	username, _ := c.Locals("username").(string)

	var raw json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			log.Printf("activity: marshal payload failed: %v", err)
		} else {
			raw = b
		}
	}

	entry := models.ActivityLog{
		UserID:   userID,
		Username: username,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Payload:  []byte(raw),
	}
	if err := database.DB.Create(&entry).Error; err != nil {
		log.Printf("activity: could not record %s %s: %v", action, entity, err)
	}
}
