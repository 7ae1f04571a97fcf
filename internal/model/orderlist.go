package model

import "strings"

const (
	AttrListKey = "listKey"
	AttrList    = "list"
	AttrVersion = "version"
)

// List key prefixes. A task ordering hangs off a preMemo, a child ordering off a task.
const (
	TaskListPrefix  = "task#"
	ChildListPrefix = "child#"
)

// OrderList is a user-defined display order over the children of one parent.
type OrderList struct {
	ListKey   string   `json:"listKey"`
	List      []string `json:"list"`
	Version   int      `json:"version"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
}

func TaskListKey(memoID string) string {
	return TaskListPrefix + memoID
}

func ChildListKey(taskID string) string {
	return ChildListPrefix + taskID
}

// ParseListKey splits a list key into its prefix and parent id.
// ok is false for keys that are not task#{id} or child#{id}.
func ParseListKey(key string) (prefix, parentID string, ok bool) {
	for _, p := range []string{TaskListPrefix, ChildListPrefix} {
		if strings.HasPrefix(key, p) && len(key) > len(p) {
			return p, key[len(p):], true
		}
	}
	return "", "", false
}

// FirstDuplicate returns the first id that occurs twice in ids.
func FirstDuplicate(ids []string) (string, bool) {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return id, true
		}
		seen[id] = struct{}{}
	}
	return "", false
}
