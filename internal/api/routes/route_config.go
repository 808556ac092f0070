package routes

import (
	"Macho-AI-Backend/internal/api/handlers"
	"Macho-AI-Backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App             *fiber.App
	CreatureHandler handlers.CreatureHandler
	SnapshotHandler handlers.SnapshotHandler
	Middleware      middleware.Middleware
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Creature()
	c.Snapshots()
	c.GuestRoute()
}

func (c *Config) Creature() {
	creature := c.App.Group("/api/v1/creature")
	// creature routes
	{
		creature.Get("", c.CreatureHandler.GetCreature)
		creature.Post("/feed", c.CreatureHandler.Feed)
		creature.Get("/history", c.CreatureHandler.GetHistory)
		creature.Post("/reset", c.CreatureHandler.Reset)
		creature.Get("/scans", c.CreatureHandler.GetMealScans)
	}
}

func (c *Config) Snapshots() {
	snapshots := c.App.Group("/api/v1/snapshots")
	{
		snapshots.Get("", c.SnapshotHandler.GetExports)
		snapshots.Get("/export", c.SnapshotHandler.Export)
		snapshots.Post("/import", c.SnapshotHandler.Import)
		snapshots.Post("/share", c.SnapshotHandler.Share)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong, its works. test"})
	})
}
