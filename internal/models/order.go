package models

import "time"

// Order mapea la tabla `rental` (los "orders" de la plataforma).
type Order struct {
	RentalID    int        `json:"rental_id" gorm:"column:rental_id;primaryKey;autoIncrement"`
	RentalDate  time.Time  `json:"rental_date" gorm:"column:rental_date"`
	InventoryID *int       `json:"-" gorm:"column:inventory_id"`
	CustomerID  int        `json:"customer_id" gorm:"column:customer_id"`
	ReturnDate  *time.Time `json:"return_date" gorm:"column:return_date"`
	StaffID     *int       `json:"-" gorm:"column:staff_id"`
	LastUpdate  *time.Time `json:"-" gorm:"column:last_update"`
}

func (Order) TableName() string { return "rental" }

type Payment struct {
	PaymentID   int       `json:"payment_id" gorm:"column:payment_id;primaryKey;autoIncrement"`
	CustomerID  int       `json:"customer_id" gorm:"column:customer_id"`
	StaffID     *int      `json:"-" gorm:"column:staff_id"`
	RentalID    *int      `json:"rental_id" gorm:"column:rental_id"`
	Amount      float64   `json:"amount" gorm:"column:amount;type:numeric(10,2)"`
	PaymentDate time.Time `json:"payment_date" gorm:"column:payment_date"`
}

func (Payment) TableName() string { return "payment" }
