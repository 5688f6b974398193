package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Category string

const (
	CategoryMaintenance Category = "maintenance"
	CategoryElectricity Category = "electricity"
	CategorySalaries    Category = "salaries"
	CategoryEquipment   Category = "equipment"
	CategoryChemicals   Category = "chemicals"
	CategoryOther       Category = "other"
)

func ValidCategory(c Category) bool {
	switch c {
	case CategoryMaintenance, CategoryElectricity, CategorySalaries,
		CategoryEquipment, CategoryChemicals, CategoryOther:
		return true
	}
	return false
}

type Expense struct {
	ID             snowflake.ID `json:"id" gorm:"primaryKey"`
	OrganizationID snowflake.ID `json:"organization_id" gorm:"index;not null"`
	Category       Category     `json:"category" gorm:"type:varchar(32);not null"`
	Description    string       `json:"description"`
	DescriptionAr  string       `json:"description_ar"`
	Amount         float64      `json:"amount" gorm:"not null"`
	ExpenseDate    time.Time    `json:"expense_date" gorm:"index"`
	ApprovedBy     string       `json:"approved_by"`
	ReceiptURL     string       `json:"receipt_url"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

func (Expense) TableName() string {
	return "expenses"
}
