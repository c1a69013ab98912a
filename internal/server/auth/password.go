package auth

import (
	"errors"

	"github.com/LouisLiuNova/SyncHub/internal/common"
	"golang.org/x/crypto/bcrypt"
)

var passwordCost = bcrypt.DefaultCost

func HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), passwordCost)
}

// CheckPassword returns common.ErrInvalidCredentials when password does not
// match hash.
func CheckPassword(hash []byte, password string) error {
	err := bcrypt.CompareHashAndPassword(hash, []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return common.ErrInvalidCredentials
	}
	return err
}
