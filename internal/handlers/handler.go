package handlers

import (
	"quizapp/internal/auth"
	"quizapp/internal/database"
)

// Handler serves every route. Dependencies are passed in so tests can build
// one over a throwaway store.
type Handler struct {
	store database.Store
	creds *auth.CredentialStore
}

func New(store database.Store, creds *auth.CredentialStore) *Handler {
	return &Handler{store: store, creds: creds}
}
