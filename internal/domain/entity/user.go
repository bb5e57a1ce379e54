package entity

import "time"

// Papéis de usuário.
const (
	RoleAdmin      = "admin"
	RoleOperador   = "operador"
	RoleConferente = "conferente"
)

// User usuário autenticável; fornece createdBy/approvedBy/performedBy ao núcleo.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
