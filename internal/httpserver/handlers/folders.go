package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/afeldman/gmark/internal/domain"
	"github.com/afeldman/gmark/internal/httpserver/deps"
	"github.com/afeldman/gmark/internal/httpserver/mw"
)

// FolderTree returns the requester's folder hierarchy with direct
// bookmark counts per folder.
func FolderTree(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := mw.UserID(r.Context())

		tree, err := d.Resolver.Tree(r.Context(), userID)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if tree == nil {
			tree = []*domain.FolderNode{}
		}
		writeJSON(w, http.StatusOK, tree)
	}
}

type createFolderRequest struct {
	Path string `json:"path"`
}

// CreateFolder materializes a folder path, creating any missing
// ancestors, and returns the deepest folder.
func CreateFolder(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createFolderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if len(domain.SplitPath(req.Path)) == 0 {
			writeError(w, http.StatusBadRequest, "path must name at least one folder")
			return
		}

		userID := mw.UserID(r.Context())
		if _, err := d.Resolver.EnsureHierarchy(r.Context(), userID, req.Path); err != nil {
			writeStoreError(w, err)
			return
		}

		f, err := d.Store.GetFolderByPath(r.Context(), userID, req.Path)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, f)
	}
}

// DeleteFolder removes a folder and its descendants, detaching any
// bookmarks they held.
func DeleteFolder(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid folder id")
			return
		}

		userID := mw.UserID(r.Context())
		folders, err := d.Store.ListFolders(r.Context(), userID)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		owned := false
		for _, f := range folders {
			if f.ID == id {
				owned = true
				break
			}
		}
		if !owned {
			writeError(w, http.StatusNotFound, "not found")
			return
		}

		if err := d.Store.DeleteFolder(r.Context(), id); err != nil {
			writeStoreError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
