package dto

// CategoryRequest creates or renames a category.
type CategoryRequest struct {
	CategoryName string `json:"categoryName" validate:"notblank,max=255"`
}

// CategoryMessages localizes CategoryRequest violations.
var CategoryMessages = map[string]string{
	"CategoryName.notblank": "Tên danh mục không được để trống",
	"CategoryName.max":      "Tên danh mục không được vượt quá 255 ký tự",
}
