package service

import (
	"errors"

	"github.com/google/uuid"

	"go-retail-sales/internal/ws"
)

var ErrValidation = errors.New("validation failed")

// Actor is the authenticated user performing a write, taken from the JWT claims
type Actor struct {
	ID    string
	Name  string
	Email string
}

func (a Actor) userID() (uuid.UUID, error) {
	id, err := uuid.Parse(a.ID)
	if err != nil {
		return uuid.Nil, errors.New("invalid actor id")
	}
	return id, nil
}

func (a Actor) wsActor() *ws.Actor {
	return &ws.Actor{ID: a.ID, Name: a.Name, Email: a.Email}
}
