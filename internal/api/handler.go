package api

import (
	"github.com/auklet-oj/auklet/internal/config"
	"github.com/auklet-oj/auklet/internal/pubsub"
	"gorm.io/gorm"
)

// Handler holds all dependencies for the API handlers.
type Handler struct {
	cfg    *config.Config
	db     *gorm.DB
	broker *pubsub.Broker
}

// NewHandler creates a new handler with its dependencies.
func NewHandler(cfg *config.Config, db *gorm.DB, broker *pubsub.Broker) *Handler {
	return &Handler{
		cfg:    cfg,
		db:     db,
		broker: broker,
	}
}
