// Package services holds the server-side business logic behind the HTTP
// API. Every mutation follows the same sequence: validate input, check
// ownership where the operation deletes, persist, then broadcast the change.
package services

import (
	"time"

	"github.com/LouisLiuNova/SyncHub/internal/server/models"
)

// Broadcaster notifies live clients that a collection changed.
type Broadcaster interface {
	Broadcast(topic string)
}

// Authorizer enforces ownership on deletes.
type Authorizer interface {
	AuthorizeMutation(id models.Identity, ownerID int64) error
}

type clock func() time.Time

func utcNow() time.Time {
	return time.Now().UTC()
}
