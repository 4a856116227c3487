package jurisdiction

import (
	"context"

	"github.com/opensrp/plan-service/pkg/drilldown"
)

const defaultPageSize = 20

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Upsert(ctx context.Context, j *Jurisdiction) error {
	return s.repo.Upsert(ctx, j)
}

func (s *Service) GetByID(ctx context.Context, id string) (*Jurisdiction, error) {
	return s.repo.GetByID(ctx, id)
}

func tableConfig(pageSize int) drilldown.Config[Jurisdiction] {
	return drilldown.Config[Jurisdiction]{
		Columns: []drilldown.Column[Jurisdiction]{
			{Name: "id", Cell: func(j Jurisdiction) string { return j.ID }},
			{Name: "name", Cell: func(j Jurisdiction) string { return j.Name }},
		},
		Identifier:       func(j Jurisdiction) string { return j.ID },
		ParentIdentifier: func(j Jurisdiction) string { return j.ParentID },
		RootParentID:     "",
		LinkerColumn:     "name",
		PageSize:         pageSize,
	}
}

// Hierarchy returns one page of the hierarchy level under the given parent.
// An empty parent means the root level. Child classification runs over the
// full jurisdiction set, not just the requested level.
func (s *Service) Hierarchy(ctx context.Context, parent string, page, pageSize int) (*HierarchyPage, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	tbl, err := drilldown.New(tableConfig(pageSize), all)
	if err != nil {
		return nil, err
	}
	if parent != "" {
		tbl.DrillTo(parent)
	}
	tbl.SetPage(page)

	linked := tbl.Columns()
	label := linked[1].Cell

	out := &HierarchyPage{
		Parent:   parent,
		Page:     tbl.Page(),
		PageSize: tbl.PageSize(),
		Total:    tbl.Total(),
	}
	for _, j := range tbl.Rows() {
		out.Rows = append(out.Rows, HierarchyRow{
			Jurisdiction: j,
			HasChildren:  tbl.HasChildren(j),
			Label:        label(j),
		})
	}
	return out, nil
}
