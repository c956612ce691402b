package models

import (
	"time"
)

const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	FullName     string `gorm:"not null"                 json:"full_name"`
	Phone        string `json:"phone"`
	StaffID      string `gorm:"unique;not null"          json:"staff_id"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null;default:User"    json:"role"`
}

// Order is one pending cart line. It mirrors the product row it points to
// and is deleted together with it when the cart is archived.
type Order struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	StaffID   string    `gorm:"index;not null"           json:"staff_id"`
	Model     string    `json:"model"`
	ProductID uint      `gorm:"not null"                 json:"product_id"`
	Category  string    `json:"category"`
	Price     *float64  `json:"price"`
	Diopter   string    `json:"diopter"`
	Quantity  int       `gorm:"default:0"                json:"quantity"`
	Note      string    `gorm:"default:-"                json:"note"`
	Branch    string    `gorm:"default:-"                json:"branch"`
	IsSent    bool      `gorm:"index;default:false"      json:"is_sent"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductColumns is the column set shared by the lens style catalog
// tables. The tables stay separate on purpose, one per category.
type ProductColumns struct {
	ID       uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID  uint     `gorm:"default:0"                json:"order_id"`
	StaffID  string   `gorm:"index"                    json:"staff_id"`
	Image    string   `json:"image"`
	Name     string   `gorm:"not null"                 json:"name"`
	Kind     string   `json:"kind"`
	Diopter  string   `json:"diopter"`
	Quantity int      `gorm:"default:0"                json:"quantity"`
	Price    *float64 `json:"price"`
	Note     string   `json:"note"`
	Category string   `json:"category"`
}

type ContactLens struct{ ProductColumns }

func (ContactLens) TableName() string { return "contact_lenses" }

type ColorLens struct{ ProductColumns }

func (ColorLens) TableName() string { return "color_lenses" }

type EyeDrop struct{ ProductColumns }

func (EyeDrop) TableName() string { return "eye_drops" }

type Accessory struct{ ProductColumns }

func (Accessory) TableName() string { return "accessories" }

type ComputerLens struct{ ProductColumns }

func (ComputerLens) TableName() string { return "computer_lenses" }

type Frame struct{ ProductColumns }

func (Frame) TableName() string { return "frames" }

// ReadyMade differs from the lens tables: no image or kind, but it keeps
// the sale context (model, branch, creation time) on the row itself.
type ReadyMade struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint      `gorm:"default:0"                json:"order_id"`
	StaffID   string    `gorm:"index"                    json:"staff_id"`
	Model     string    `json:"model"`
	Name      string    `gorm:"not null"                 json:"name"`
	Diopter   string    `json:"diopter"`
	Quantity  int       `gorm:"default:0"                json:"quantity"`
	Price     *float64  `json:"price"`
	Note      string    `json:"note"`
	Branch    string    `gorm:"default:-"                json:"branch"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

func (ReadyMade) TableName() string { return "ready_mades" }

// Archive is a frozen snapshot of a submitted cart.
type Archive struct {
	ID               uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Branch           string    `json:"branch"`
	UserFullName     string    `json:"user_full_name"`
	CreatedAt        time.Time `json:"created_at"`
	IsPdfDownloaded  bool      `gorm:"default:false"            json:"is_pdf_downloaded"`
	IsTelegramShared bool      `gorm:"default:false"            json:"is_telegram_shared"`
}

type ArchiveItem struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ArchiveID uint   `gorm:"index;not null"           json:"archive_id"`
	Category  string `json:"category"`
	Model     string `json:"model"`
	Diopter   string `json:"diopter"`
	Quantity  int    `gorm:"default:0"                json:"quantity"`
	Note      string `json:"note"`
}

type Feedback struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	Message   string    `gorm:"not null"                 json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type TelegramChat struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	FullName string `gorm:"not null"                 json:"full_name"`
	ChatID   string `gorm:"unique;not null"          json:"chat_id"`
}

// All lists every model for migrations.
func All() []any {
	return []any{
		&User{},
		&Order{},
		&ContactLens{},
		&ColorLens{},
		&EyeDrop{},
		&Accessory{},
		&ComputerLens{},
		&Frame{},
		&ReadyMade{},
		&Archive{},
		&ArchiveItem{},
		&Feedback{},
		&TelegramChat{},
	}
}
