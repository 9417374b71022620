package domain

import "github.com/google/uuid"

// Project is owned by the project-management surface; the roster core
// only references it by id and never mutates it.
type Project struct {
	ID     uuid.UUID `json:"id"`
	Code   string    `json:"code"`
	Name   string    `json:"name"`
	City   string    `json:"city,omitempty"`
	Stage  string    `json:"stage,omitempty"`
	Status string    `json:"status,omitempty"`
	Health string    `json:"health,omitempty"`
}

// User is owned by the user-management surface; referenced by id from
// assignments and surfaced by the directory search.
type User struct {
	ID         uuid.UUID `json:"id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Role       string    `json:"role,omitempty"`
	SuperAdmin bool      `json:"super_admin,omitempty"`
}
