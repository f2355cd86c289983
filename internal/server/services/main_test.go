package services

import (
	"os"
	"testing"

	"github.com/dmitrijs2005/devlog/internal/server/auth"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	auth.PasswordCost = bcrypt.MinCost
	os.Exit(m.Run())
}
