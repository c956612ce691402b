package catalog

import (
	"strings"

	"github.com/davronbekov/optika-orders/internal/models"
)

// Category describes one catalog section: the URL slug of its order page,
// the display label stored on product/order/archive rows, and the table
// holding its product rows. The label doubles as the discriminator that
// maps an order row back to its table.
type Category struct {
	Slug     string
	Label    string
	Table    string
	Saved    string
	HasImage bool
	HasKind  bool
	HasModel bool

	newRow func() any
}

// NewRow returns a fresh model for this category's table, for typed
// updates and deletes of single product rows.
func (c Category) NewRow() any { return c.newRow() }

var categories = []Category{
	{
		Slug: "contact", Label: "Контакт линза", Saved: "Rangsiz linzalar saqlandi",
		Table: models.ContactLens{}.TableName(), HasImage: true, HasKind: true,
		newRow: func() any { return &models.ContactLens{} },
	},
	{
		Slug: "colored", Label: "Цветная линза", Saved: "Rangli linzalar saqlandi",
		Table: models.ColorLens{}.TableName(), HasImage: true, HasKind: true,
		newRow: func() any { return &models.ColorLens{} },
	},
	{
		Slug: "drops", Label: "Капля", Saved: "Kaplyalar saqlandi",
		Table: models.EyeDrop{}.TableName(), HasImage: true, HasKind: true,
		newRow: func() any { return &models.EyeDrop{} },
	},
	{
		Slug: "accessories", Label: "Аксессуар", Saved: "Aksessuarlar saqlandi",
		Table: models.Accessory{}.TableName(), HasImage: true, HasKind: true,
		newRow: func() any { return &models.Accessory{} },
	},
	{
		Slug: "anticomputer", Label: "Антикомп", Saved: "Antikompyuterlar saqlandi",
		Table: models.ComputerLens{}.TableName(), HasImage: true, HasKind: true,
		newRow: func() any { return &models.ComputerLens{} },
	},
	{
		// frames use Kind for the gender split, so it is part of the merge key
		Slug: "frames", Label: "Оправа", Saved: "Opravalar saqlandi",
		Table: models.Frame{}.TableName(), HasImage: true, HasKind: true,
		newRow: func() any { return &models.Frame{} },
	},
	{
		Slug: "ready", Label: "Готовые", Saved: "Gatoviylar saqlandi",
		Table: models.ReadyMade{}.TableName(), HasModel: true,
		newRow: func() any { return &models.ReadyMade{} },
	},
}

// All returns the categories in display order.
func All() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// BySlug resolves an order page slug.
func BySlug(slug string) (Category, bool) {
	for _, c := range categories {
		if c.Slug == slug {
			return c, true
		}
	}
	return Category{}, false
}

// ByLabel resolves the label stored on an order row. Labels saved through
// the category pages may differ in case, so the match is case-insensitive.
func ByLabel(label string) (Category, bool) {
	for _, c := range categories {
		if strings.EqualFold(c.Label, label) {
			return c, true
		}
	}
	return Category{}, false
}
