package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/afeldman/gmark/internal/httpserver/deps"
	"github.com/afeldman/gmark/internal/httpserver/handlers"
	"github.com/afeldman/gmark/internal/httpserver/mw"
)

func init() { Register(registerFolders) }

func registerFolders(r chi.Router, d deps.Deps) {
	r.Route("/api/folders", func(r chi.Router) {
		r.Use(mw.RequireUser())
		r.Get("/tree", handlers.FolderTree(d))
		r.Post("/", handlers.CreateFolder(d))
		r.Delete("/{id}", handlers.DeleteFolder(d))
	})
}
