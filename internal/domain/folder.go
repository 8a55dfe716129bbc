package domain

import "time"

// Folder is a node in a user's bookmark hierarchy. FullPath is the
// materialized path from the root, e.g. "/tech/javascript"; it always
// equals the parent's FullPath joined with Name.
type Folder struct {
	ID       int64  `db:"id" json:"id"`
	UserID   int64  `db:"user_id" json:"user_id"`
	Name     string `db:"name" json:"name"`
	ParentID *int64 `db:"parent_id" json:"parent_id,omitempty"`
	FullPath string `db:"full_path" json:"full_path"`

	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	ModifiedAt time.Time `db:"modified_at" json:"modified_at"`
}

// FolderNode is a folder with its subtree attached, used when rendering
// the hierarchy. BookmarkCount counts bookmarks assigned directly to
// this folder, not to descendants.
type FolderNode struct {
	ID            int64         `json:"id"`
	Name          string        `json:"name"`
	FullPath      string        `json:"full_path"`
	Children      []*FolderNode `json:"children"`
	BookmarkCount int           `json:"bookmark_count"`
}

// BuildFolderTree assembles folders into a forest rooted at parentID
// (nil for top level). Children are grouped by parent id; counts holds
// direct bookmark counts keyed by folder id.
func BuildFolderTree(folders []*Folder, counts map[int64]int, parentID *int64) []*FolderNode {
	byParent := make(map[int64][]*Folder)
	var roots []*Folder
	for _, f := range folders {
		if f.ParentID == nil {
			roots = append(roots, f)
			continue
		}
		byParent[*f.ParentID] = append(byParent[*f.ParentID], f)
	}

	level := roots
	if parentID != nil {
		level = byParent[*parentID]
	}

	var attach func(fs []*Folder) []*FolderNode
	attach = func(fs []*Folder) []*FolderNode {
		nodes := make([]*FolderNode, 0, len(fs))
		for _, f := range fs {
			nodes = append(nodes, &FolderNode{
				ID:            f.ID,
				Name:          f.Name,
				FullPath:      f.FullPath,
				Children:      attach(byParent[f.ID]),
				BookmarkCount: counts[f.ID],
			})
		}
		return nodes
	}

	return attach(level)
}
