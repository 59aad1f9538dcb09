package handlers

import (
	"warehouse/internal/repositories"
	"warehouse/internal/services"
)

// Package-level wiring, set once from the router before any request is
// served. Handlers stay plain functions the way the route table expects.
var (
	authSvc   services.AuthService
	pinSvc    *services.PinService
	userStore services.UserStore

	inventoryRepo repositories.InventoryRepository
	orderRepo     repositories.OrderRepository
)

// Deps carries everything the handler set needs.
type Deps struct {
	Auth      services.AuthService
	Pins      *services.PinService
	Users     services.UserStore
	Inventory repositories.InventoryRepository
	Orders    repositories.OrderRepository
}

// Configure installs the dependency set.
func Configure(d Deps) {
	authSvc = d.Auth
	pinSvc = d.Pins
	userStore = d.Users
	inventoryRepo = d.Inventory
	orderRepo = d.Orders
}
