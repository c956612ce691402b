package catalog

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/davronbekov/optika-orders/internal/models"
)

// Input carries one posted catalog row after handler side cleanup.
type Input struct {
	Name     string
	Kind     string
	Diopter  string
	Quantity int
	Price    *float64
	Note     string
	Image    string
	Category string
}

// Item is the superset of the per-category product columns. Reads via
// SELECT * leave the columns a table does not have at their zero value,
// and writes are filtered down to the table's columns by the category
// flags.
type Item struct {
	ID        uint
	OrderID   uint
	StaffID   string
	Image     string
	Name      string
	Kind      string
	Model     string
	Diopter   string
	Quantity  int
	Price     *float64
	Note      string
	Branch    string
	Category  string
	CreatedAt time.Time
}

// MergeSave folds one item into the category's product table and keeps
// the pending order row in sync. The merge key is staff + category +
// name, extended by diopter and kind when they are set, all compared
// case-insensitively. On a match quantities are summed and the provided
// fields overwrite the stored ones. Must run inside the caller's
// transaction together with the rest of the batch.
func MergeSave(tx *gorm.DB, cat Category, staffID, branch string, in Input) error {
	label := in.Category
	if label == "" {
		label = cat.Label
	}

	existing, err := findByKey(tx, cat, staffID, label, in, false)
	switch {
	case err == nil:
		existing.Quantity += in.Quantity
		vals := map[string]any{"quantity": existing.Quantity, "note": in.Note}
		existing.Note = in.Note
		if in.Diopter != "" {
			existing.Diopter = in.Diopter
			vals["diopter"] = in.Diopter
		}
		if in.Price != nil {
			existing.Price = in.Price
			vals["price"] = in.Price
		}
		if cat.HasKind && in.Kind != "" {
			existing.Kind = in.Kind
			vals["kind"] = in.Kind
		}
		if cat.HasImage && in.Image != "" {
			existing.Image = in.Image
			vals["image"] = in.Image
		}
		if cat.HasModel {
			existing.Model = in.Name
			existing.Branch = branch
			vals["model"] = in.Name
			vals["branch"] = branch
			vals["created_at"] = time.Now()
		}
		if err := tx.Table(cat.Table).Where("id = ?", existing.ID).Updates(vals).Error; err != nil {
			return err
		}
		return syncOrder(tx, staffID, branch, label, existing)

	case errors.Is(err, gorm.ErrRecordNotFound):
		vals := map[string]any{
			"order_id": 0,
			"staff_id": staffID,
			"name":     in.Name,
			"diopter":  in.Diopter,
			"quantity": in.Quantity,
			"price":    in.Price,
			"note":     in.Note,
			"category": label,
		}
		if cat.HasImage {
			vals["image"] = in.Image
		}
		if cat.HasKind {
			vals["kind"] = in.Kind
		}
		if cat.HasModel {
			vals["model"] = in.Name
			vals["branch"] = branch
			vals["created_at"] = time.Now()
		}
		if err := tx.Table(cat.Table).Create(vals).Error; err != nil {
			return err
		}
		created, err := findByKey(tx, cat, staffID, label, in, true)
		if err != nil {
			return err
		}
		return syncOrder(tx, staffID, branch, label, created)

	default:
		return err
	}
}

func findByKey(tx *gorm.DB, cat Category, staffID, label string, in Input, newest bool) (Item, error) {
	q := tx.Table(cat.Table).
		Where("staff_id = ?", staffID).
		Where("LOWER(category) = LOWER(?)", label).
		Where("LOWER(name) = LOWER(?)", in.Name)
	if in.Diopter != "" {
		q = q.Where("LOWER(diopter) = LOWER(?)", in.Diopter)
	}
	if cat.HasKind && in.Kind != "" {
		q = q.Where("LOWER(kind) = LOWER(?)", in.Kind)
	}
	if newest {
		q = q.Order("id DESC")
	} else {
		q = q.Order("id")
	}

	var it Item
	err := q.Take(&it).Error
	return it, err
}

func syncOrder(tx *gorm.DB, staffID, branch, label string, it Item) error {
	var order models.Order
	err := tx.Where(
		"staff_id = ? AND product_id = ? AND LOWER(category) = LOWER(?) AND is_sent = ?",
		staffID, it.ID, label, false,
	).Take(&order).Error

	switch {
	case err == nil:
		order.Quantity = it.Quantity
		order.Note = orDash(it.Note)
		order.Price = it.Price
		order.Diopter = it.Diopter
		order.Branch = branch
		return tx.Save(&order).Error

	case errors.Is(err, gorm.ErrRecordNotFound):
		name := it.Name
		if name == "" {
			name = it.Model
		}
		order = models.Order{
			StaffID:   staffID,
			ProductID: it.ID,
			Category:  label,
			Model:     name,
			Price:     it.Price,
			Diopter:   it.Diopter,
			Quantity:  it.Quantity,
			Note:      orDash(it.Note),
			Branch:    branch,
			CreatedAt: time.Now(),
		}
		return tx.Create(&order).Error

	default:
		return err
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
