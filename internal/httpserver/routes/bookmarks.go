package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/afeldman/gmark/internal/httpserver/deps"
	"github.com/afeldman/gmark/internal/httpserver/handlers"
	"github.com/afeldman/gmark/internal/httpserver/mw"
)

func init() { Register(registerBookmarks) }

func registerBookmarks(r chi.Router, d deps.Deps) {
	r.Route("/api/bookmarks", func(r chi.Router) {
		r.Use(mw.RequireUser())
		r.Post("/", handlers.CreateBookmark(d))
		r.Get("/", handlers.ListBookmarks(d))
		r.Get("/{id}", handlers.GetBookmark(d))
		r.Patch("/{id}", handlers.UpdateBookmark(d))
		r.Delete("/{id}", handlers.DeleteBookmark(d))
		r.Post("/{id}/move", handlers.MoveBookmark(d))
	})
}
