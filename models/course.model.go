package models

import "gorm.io/gorm"

type Course struct {
	gorm.Model
	CourseName string `gorm:"not null" json:"course_name"`
}
