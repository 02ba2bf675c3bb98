package models

// Category is a named group of menu items shown in the menu panel
type Category struct {
	Name  string   `yaml:"name" json:"name"`
	Items []string `yaml:"items" json:"items"`
}

// Brand is one restaurant brand and where its data lives
type Brand struct {
	ID            string     `yaml:"id" json:"id"`
	Name          string     `yaml:"name" json:"name"`
	Icon          string     `yaml:"icon" json:"icon"`
	MenuFeed      string     `yaml:"menu_feed" json:"-"`
	LocationsFeed string     `yaml:"locations_feed" json:"-"`
	ImageDir      string     `yaml:"image_dir" json:"-"`
	Categories    []Category `yaml:"categories" json:"categories,omitempty"`
}

// MenuItem is an item as shown in the menu panel
type MenuItem struct {
	Name      string `json:"name"`
	Category  string `json:"category"`
	ImagePath string `json:"imagePath"`
	Quantity  int    `json:"quantity"`
}

// MenuCategory is a category restricted to items the brand's price table knows
type MenuCategory struct {
	Name  string     `json:"name"`
	Items []MenuItem `json:"items"`
}
