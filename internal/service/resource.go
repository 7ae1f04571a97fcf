package service

import (
	"github.com/BuzzLyutic/taskseed-api/internal/model"
	"github.com/BuzzLyutic/taskseed-api/internal/repo"
)

// Index describes the one secondary index a resource lists by.
type Index struct {
	Name string
	// Attr is the foreign key attribute the index is partitioned on.
	Attr string
	// Param is the query parameter carrying the parent id.
	Param string
}

// Resource describes one CRUD collection.
type Resource struct {
	Name         string
	CreateFields []string
	UpdateFields []string
	// Required fields must be non-empty on create.
	Required []string
	Index    *Index
	// CheckIDMatch makes update reject a body id that differs from the path id.
	CheckIDMatch bool
}

// Schema binds the resource to a concrete table.
func (r Resource) Schema(table string) repo.Schema {
	s := repo.Schema{Table: table, Key: model.AttrID}
	if r.Index != nil {
		s.Indexes = map[string]string{r.Index.Name: r.Index.Attr}
	}
	return s
}

var (
	PreMemo = Resource{
		Name:         "preMemo",
		CreateFields: []string{"content", "tag"},
		UpdateFields: []string{"content", "tag"},
		CheckIDMatch: true,
	}

	Task = Resource{
		Name:         "task",
		CreateFields: []string{"memo", "title", "detail"},
		UpdateFields: []string{"title", "detail"},
		Required:     []string{"memo"},
		Index:        &Index{Name: "GSI_ByMemo", Attr: "memo", Param: "memoId"},
		CheckIDMatch: true,
	}

	ChildTask = Resource{
		Name:         "childTask",
		CreateFields: []string{"parent", "title", "detail"},
		UpdateFields: []string{"title", "detail"},
		Required:     []string{"parent"},
		Index:        &Index{Name: "GSI_ByParent", Attr: "parent", Param: "parentId"},
	}

	Tag = Resource{
		Name:         "tag",
		CreateFields: []string{"title", "color"},
		UpdateFields: []string{"title", "color"},
	}

	Color = Resource{
		Name:         "color",
		CreateFields: []string{"title", "code"},
		UpdateFields: []string{"title", "code"},
		CheckIDMatch: true,
	}
)

// OrderListSchema is the ordering table: keyed by listKey, no secondary index.
func OrderListSchema(table string) repo.Schema {
	return repo.Schema{Table: table, Key: model.AttrListKey}
}
