package domain

import "time"

// Visibility controls who can see a bookmark.
type Visibility string

const (
	VisibilityUser   Visibility = "user"
	VisibilityTeam   Visibility = "team"
	VisibilityPublic Visibility = "public"
)

// Valid reports whether v is one of the known visibility modes.
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityUser, VisibilityTeam, VisibilityPublic:
		return true
	}
	return false
}

// Bookmark is a saved URL owned by a single user.
// The URL is unique within that user's bookmark set.
type Bookmark struct {
	ID     int64  `db:"id" json:"id"`
	UserID int64  `db:"user_id" json:"user_id"`
	URL    string `db:"url" json:"url"`
	Title  string `db:"title" json:"title"`

	// Description holds the user-provided description or, when
	// classification ran and none was provided, the AI summary.
	Description string `db:"description" json:"description"`

	// FolderID is nil for unassigned (root) bookmarks.
	FolderID *int64 `db:"folder_id" json:"folder_id,omitempty"`

	Mode Visibility `db:"mode" json:"mode"`

	AccessTime   time.Time `db:"access_time" json:"access_time"`
	ModifiedTime time.Time `db:"modified_time" json:"modified_time"`
	ChangedTime  time.Time `db:"changed_time" json:"changed_time"`

	// Keywords are ordered highest rank first.
	Keywords []Keyword `json:"keywords,omitempty"`
}

// Keyword is a ranked term attached to a bookmark. Higher rank means
// more relevant.
type Keyword struct {
	Term string `db:"keyword" json:"term"`
	Rank int    `db:"ranking" json:"rank"`
}

// BookmarkUpdate carries the mutable bookmark fields; nil pointers leave
// the stored value untouched.
type BookmarkUpdate struct {
	Title       *string     `json:"title,omitempty"`
	Description *string     `json:"description,omitempty"`
	Mode        *Visibility `json:"mode,omitempty"`
}

// Empty reports whether the update would change nothing.
func (u BookmarkUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Mode == nil
}
