package models

import "time"

// User mapea la tabla `customer` del esquema sakila.
type User struct {
	CustomerID    int        `json:"customer_id" gorm:"column:customer_id;primaryKey;autoIncrement"`
	StoreID       *int       `json:"-" gorm:"column:store_id"`
	FirstName     string     `json:"first_name" gorm:"column:first_name;not null"`
	LastName      string     `json:"last_name" gorm:"column:last_name;not null"`
	Email         string     `json:"email" gorm:"column:email;uniqueIndex;not null"`
	PasswordHash  *string    `json:"-" gorm:"column:password_hash"`
	AddressID     *int       `json:"-" gorm:"column:address_id"`
	Activebool    bool       `json:"activebool" gorm:"column:activebool;default:true"`
	Active        int        `json:"-" gorm:"column:active;default:1"`
	IsAdmin       bool       `json:"is_admin" gorm:"column:is_admin;default:false"`
	OauthProvider *string    `json:"-" gorm:"column:oauth_provider"`
	OauthID       *string    `json:"-" gorm:"column:oauth_id"`
	CreateDate    *time.Time `json:"-" gorm:"column:create_date"`
	LastUpdate    *time.Time `json:"-" gorm:"column:last_update"`
}

func (User) TableName() string { return "customer" }
