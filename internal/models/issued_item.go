package models

const (
	CategoryDustSuit   = "dust_suit"
	CategorySafetyShoe = "safety_shoe"
	CategoryCanvasShoe = "canvas_shoe"
	CategoryCleanCap   = "clean_cap"

	ConditionNew  = "new"
	ConditionUsed = "used"
)

// ItemCategories lists the protective equipment categories in display order
var ItemCategories = []string{CategoryDustSuit, CategorySafetyShoe, CategoryCanvasShoe, CategoryCleanCap}

// IssuedItem is one slot of protective equipment held by an employee
type IssuedItem struct {
	ItemID        int    `json:"item_id"`
	EmpID         int    `json:"emp_id"`
	Category      string `json:"category"`
	SlotIndex     int    `json:"slot_index"`
	Size          string `json:"size"`
	ItemCode      string `json:"item_code,omitempty"`      // dust suits and clean caps
	ItemCondition string `json:"item_condition,omitempty"` // safety and canvas shoes
	IssueDate     string `json:"issue_date"`               // yyyy-mm-dd
}

type ReplaceItemsRequest struct {
	Items []IssuedItem `json:"items"`
}

type ParseItemRowsRequest struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}
