package models

import "time"

type Category struct {
	CategoryID int        `json:"category_id" gorm:"column:category_id;primaryKey;autoIncrement"`
	Name       string     `json:"name" gorm:"column:name;not null"`
	LastUpdate *time.Time `json:"-" gorm:"column:last_update"`
}

func (Category) TableName() string { return "category" }
