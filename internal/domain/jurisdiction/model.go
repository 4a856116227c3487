package jurisdiction

// Jurisdiction is one node of the operational-area hierarchy. The root level
// has an empty parent id.
type Jurisdiction struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ParentID string `json:"parentId"`
}

// HierarchyRow is a Jurisdiction annotated for one level of drill-down
// display.
type HierarchyRow struct {
	Jurisdiction
	HasChildren bool   `json:"hasChildren"`
	Label       string `json:"label"`
}

// HierarchyPage is one page of one hierarchy level.
type HierarchyPage struct {
	Parent   string         `json:"parent"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
	Total    int            `json:"total"`
	Rows     []HierarchyRow `json:"rows"`
}
