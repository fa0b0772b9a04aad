package models

import "time"

type Actor struct {
	ActorID    int        `json:"actor_id" gorm:"column:actor_id;primaryKey;autoIncrement"`
	FirstName  string     `json:"first_name" gorm:"column:first_name;not null"`
	LastName   string     `json:"last_name" gorm:"column:last_name;not null"`
	LastUpdate *time.Time `json:"-" gorm:"column:last_update"`
}

func (Actor) TableName() string { return "actor" }
