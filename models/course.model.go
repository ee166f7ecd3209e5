package models

import "gorm.io/gorm"

type Course struct {
	gorm.Model
	Title       string `json:"title"`
	Description string `json:"description"`
	Author      string `json:"author"`
	Duration    int64  `json:"duration"` // days
	IsActive    bool   `json:"isActive" gorm:"default:true;index"`
}
