package domain

// Category - категория материала (масло, батарейки, ...), по которой фильтруются пункты сбора
type Category struct {
	ID      int64  `json:"id"`
	Label   string `json:"label"`
	IconRef string `json:"icon_ref"`
}

// CategoryIDs returns the ids of categories in catalog order.
func CategoryIDs(categories []Category) []int64 {
	ids := make([]int64, 0, len(categories))
	for _, c := range categories {
		ids = append(ids, c.ID)
	}
	return ids
}

// CategoryBatch - результат загрузки каталога категорий
type CategoryBatch struct {
	Categories []Category
	// Dropped counts records rejected at the client boundary as malformed.
	Dropped int
}
