package enums

import "fmt"

// ProductCategory enumerates the catalog departments.
type ProductCategory string

const (
	ProductCategoryComputers   ProductCategory = "Computers"
	ProductCategoryMiniGadgets ProductCategory = "MiniGadgets"
	ProductCategoryTablets     ProductCategory = "Tablets"
	ProductCategoryHomeTV      ProductCategory = "HomeTV"
	ProductCategoryCameras     ProductCategory = "Cameras"
	ProductCategoryGaming      ProductCategory = "Gaming"
	ProductCategoryHeadphones  ProductCategory = "Headphones"
	ProductCategoryEquipments  ProductCategory = "Equipments"
	ProductCategorySmartPhones ProductCategory = "SmartPhones"
)

var validProductCategories = []ProductCategory{
	ProductCategoryComputers,
	ProductCategoryMiniGadgets,
	ProductCategoryTablets,
	ProductCategoryHomeTV,
	ProductCategoryCameras,
	ProductCategoryGaming,
	ProductCategoryHeadphones,
	ProductCategoryEquipments,
	ProductCategorySmartPhones,
}

// String implements fmt.Stringer.
func (p ProductCategory) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ProductCategory.
func (p ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}
