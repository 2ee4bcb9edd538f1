package model

type Category struct {
	CategoryId       int64      `json:"categoryId"`
	CategoryName     string     `json:"categoryName"`
	ParentCategoryId *int64     `json:"parentCategoryId,omitempty"`
	ImageUrl         string     `json:"imageUrl,omitempty"`
	IsActive         bool       `json:"isActive"`
	SubCategories    []Category `json:"subCategories,omitempty"`
}
