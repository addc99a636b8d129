package controllers

import (
	"encoding/json"

	"plastiwood-backend/database"
	"plastiwood-backend/datasync"
	"plastiwood-backend/middlewares"
	"plastiwood-backend/models"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// Collections mirrored to WebSocket clients, matching the flat keys the
// frontend keeps per collection.
var syncedCollections = []string{
	"inventory", "purchases", "invoices", "orders",
	"suppliers", "customers", "companyInfo",
}

// PrimeSync loads the current database contents into the sync mirror. It runs
// once at startup so the snapshot replayed to a freshly connected client
// reflects stored data, not just the mutations since the last restart.
func PrimeSync() error {
	var inventory []models.InventoryItem
	if err := database.DB.Order("name ASC").Find(&inventory).Error; err != nil {
		return err
	}
	setMirror("inventory", inventory, func(v models.InventoryItem) string { return itoa(v.ID) })

	var purchases []models.Purchase
	if err := database.DB.Preload("Items").Order("date DESC, id DESC").Find(&purchases).Error; err != nil {
		return err
	}
	setMirror("purchases", purchases, func(v models.Purchase) string { return itoa(v.ID) })

	var invoices []models.Invoice
	if err := database.DB.Preload("Items").Order("date DESC, id DESC").Find(&invoices).Error; err != nil {
		return err
	}
	setMirror("invoices", invoices, func(v models.Invoice) string { return itoa(v.ID) })

	var orders []models.Order
	if err := database.DB.Preload("Items").Order("order_date DESC, id DESC").Find(&orders).Error; err != nil {
		return err
	}
	setMirror("orders", orders, func(v models.Order) string { return itoa(v.ID) })

	var suppliers []models.Supplier
	if err := database.DB.Order("name ASC").Find(&suppliers).Error; err != nil {
		return err
	}
	setMirror("suppliers", suppliers, func(v models.Supplier) string { return v.GSTIN })

	var customers []models.Customer
	if err := database.DB.Order("name ASC").Find(&customers).Error; err != nil {
		return err
	}
	setMirror("customers", customers, func(v models.Customer) string { return v.GSTIN })

	var company []models.CompanyInfo
	if err := database.DB.Limit(1).Find(&company).Error; err != nil {
		return err
	}
	setMirror("companyInfo", company, func(v models.CompanyInfo) string { return itoa(v.ID) })

	return nil
}

func setMirror[T any](collection string, rows []T, id func(T) string) {
	ids := make([]string, len(rows))
	payload := make([]any, len(rows))
	for i, row := range rows {
		ids[i] = id(row)
		payload[i] = row
	}
	datasync.Default.Set(collection, ids, payload)
}

// RequireWebSocketUpgrade rejects plain HTTP requests to the feed endpoint
// and authenticates the token passed as ?token= (browsers cannot set an
// Authorization header on a WebSocket handshake).
func RequireWebSocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		claims, err := middlewares.ParseToken(c.Query("token"))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
		}
		c.Locals("userID", claims.Subject)
		c.Locals("role", claims.Role)
		return c.Next()
	}
}

// SyncFeed streams collection change events to the client. On connect the
// current mirror of every synced collection is replayed as "set" events, then
// live events follow until the client goes away.
func SyncFeed() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		events := make(chan datasync.Event, 64)
		unsubscribe := datasync.Default.SubscribeAll(func(ev datasync.Event) {
			select {
			case events <- ev:
			default:
				// Slow client: drop rather than block the publisher.
			}
		})
		defer unsubscribe()

		for _, collection := range syncedCollections {
			items := datasync.Default.Snapshot(collection)
			data, err := json.Marshal(items)
			if err != nil {
				continue
			}
			ev := datasync.Event{Collection: collection, Action: datasync.ActionSet, Data: data}
			if err := writeEvent(conn, ev); err != nil {
				return
			}
		}

		// Reader drains (and discards) client frames so closes are noticed.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case ev := <-events:
				if err := writeEvent(conn, ev); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	})
}

func writeEvent(conn *websocket.Conn, ev datasync.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, payload)
}
