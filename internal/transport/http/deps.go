package http

import (
	jwtinfra "github.com/go-board-api/internal/infrastructure/jwt"
	"github.com/go-board-api/internal/infrastructure/postgres"
	"github.com/go-board-api/internal/infrastructure/smtp"
)

// Deps holds all infrastructure dependencies for the router. The pool behind
// the repositories is opened once at startup and owned by the process; the
// router never re-initializes it.
type Deps struct {
	UserRepo    *postgres.UserRepo
	PostRepo    *postgres.PostRepo
	Mailer      smtp.Mailer
	JWTProvider *jwtinfra.Provider
}
