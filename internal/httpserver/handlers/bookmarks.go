package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/afeldman/gmark/internal/domain"
	"github.com/afeldman/gmark/internal/httpserver/deps"
	"github.com/afeldman/gmark/internal/httpserver/mw"
	"github.com/afeldman/gmark/internal/ingest"
	"github.com/afeldman/gmark/internal/logger"
)

type createBookmarkRequest struct {
	URL          string            `json:"url"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	FolderPath   string            `json:"folder_path"`
	Mode         domain.Visibility `json:"mode"`
	AutoClassify *bool             `json:"auto_classify"`
	PreferLocal  *bool             `json:"prefer_local"`
}

// CreateBookmark ingests a new bookmark, classifying it unless the
// request opts out.
func CreateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createBookmarkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if !validURL(req.URL) {
			writeError(w, http.StatusBadRequest, "url must be absolute http or https")
			return
		}
		if req.Mode == "" {
			req.Mode = domain.VisibilityUser
		}
		if !req.Mode.Valid() {
			writeError(w, http.StatusBadRequest, "invalid mode")
			return
		}

		autoClassify := true
		if req.AutoClassify != nil {
			autoClassify = *req.AutoClassify
		}

		result, err := d.Pipeline.Ingest(r.Context(), ingest.Request{
			UserID:       mw.UserID(r.Context()),
			URL:          req.URL,
			Title:        req.Title,
			Description:  req.Description,
			FolderPath:   req.FolderPath,
			Mode:         req.Mode,
			AutoClassify: autoClassify,
			PreferLocal:  req.PreferLocal,
		})
		if err != nil {
			d.Logger.Error("bookmark ingestion failed",
				logger.String("url", req.URL), logger.Error(err))
			writeStoreError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, result)
	}
}

func ListBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := mw.UserID(r.Context())

		if q := r.URL.Query().Get("q"); q != "" {
			results, err := d.Store.SearchBookmarks(r.Context(), userID, q)
			if err != nil {
				writeStoreError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, results)
			return
		}

		var folderID *int64
		if raw := r.URL.Query().Get("folder_id"); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid folder_id")
				return
			}
			folderID = &id
		}

		bookmarks, err := d.Store.ListBookmarks(r.Context(), userID, folderID)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, bookmarks)
	}
}

func GetBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookmark, ok := ownedBookmark(w, r, d)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, bookmark)
	}
}

func UpdateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookmark, ok := ownedBookmark(w, r, d)
		if !ok {
			return
		}

		var upd domain.BookmarkUpdate
		if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if upd.Mode != nil && !upd.Mode.Valid() {
			writeError(w, http.StatusBadRequest, "invalid mode")
			return
		}

		if err := d.Store.UpdateBookmark(r.Context(), bookmark.ID, upd); err != nil {
			writeStoreError(w, err)
			return
		}
		updated, err := d.Store.GetBookmark(r.Context(), bookmark.ID)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func DeleteBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookmark, ok := ownedBookmark(w, r, d)
		if !ok {
			return
		}
		if err := d.Store.DeleteBookmark(r.Context(), bookmark.ID); err != nil {
			writeStoreError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type moveBookmarkRequest struct {
	FolderPath string `json:"folder_path"`
}

// MoveBookmark reassigns a bookmark to the folder named by path,
// creating missing folders along the way. An empty path moves it to
// the root.
func MoveBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookmark, ok := ownedBookmark(w, r, d)
		if !ok {
			return
		}

		var req moveBookmarkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		folderID, err := d.Resolver.EnsureHierarchy(r.Context(), bookmark.UserID, req.FolderPath)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if err := d.Store.MoveBookmark(r.Context(), bookmark.ID, folderID); err != nil {
			writeStoreError(w, err)
			return
		}

		moved, err := d.Store.GetBookmark(r.Context(), bookmark.ID)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, moved)
	}
}

// ownedBookmark loads the bookmark from the {id} URL parameter and
// verifies the requester owns it. Another user's bookmark reads as
// absent rather than forbidden.
func ownedBookmark(w http.ResponseWriter, r *http.Request, d deps.Deps) (*domain.Bookmark, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid bookmark id")
		return nil, false
	}

	bookmark, err := d.Store.GetBookmark(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return nil, false
	}
	if bookmark.UserID != mw.UserID(r.Context()) {
		writeError(w, http.StatusNotFound, "not found")
		return nil, false
	}
	return bookmark, true
}

func validURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
