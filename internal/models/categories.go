package models

// CategoryDef is an entry of the category registry.
type CategoryDef struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"` // Hex color, e.g. #ef4444
}

// CategoriesConfig represents the structure of the categories YAML file
type CategoriesConfig struct {
	Categories []CategoryDef `yaml:"categories"`
}

var defaultCategories = []CategoryDef{
	{ID: "food", Name: CategoryFood, Color: "#ef4444"},
	{ID: "housing", Name: CategoryHousing, Color: "#3b82f6"},
	{ID: "transport", Name: CategoryTransport, Color: "#f59e0b"},
	{ID: "utilities", Name: CategoryUtilities, Color: "#8b5cf6"},
	{ID: "health", Name: CategoryHealth, Color: "#10b981"},
	{ID: "leisure", Name: CategoryLeisure, Color: "#ec4899"},
	{ID: "other", Name: CategoryOther, Color: "#6b7280"},
	{ID: "salary", Name: CategorySalary, Color: "#22c55e"},
	{ID: "investment", Name: CategoryInvestment, Color: "#0ea5e9"},
}

var palette = []string{
	"#ef4444",
	"#f97316",
	"#f59e0b",
	"#84cc16",
	"#10b981",
	"#06b6d4",
	"#3b82f6",
	"#8b5cf6",
	"#ec4899",
	"#6b7280",
}

// DefaultCategories returns a copy of the built-in category registry.
func DefaultCategories() []CategoryDef {
	out := make([]CategoryDef, len(defaultCategories))
	copy(out, defaultCategories)
	return out
}

// Palette returns a copy of the colors assigned to categories that have none.
func Palette() []string {
	out := make([]string, len(palette))
	copy(out, palette)
	return out
}

// FindCategoryByName returns the first entry of defs whose name matches exactly.
func FindCategoryByName(defs []CategoryDef, name string) (CategoryDef, bool) {
	for _, def := range defs {
		if def.Name == name {
			return def, true
		}
	}
	return CategoryDef{}, false
}
