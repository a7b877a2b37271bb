package domain

import (
	"time"
)

type Project struct {
	ProSeq    int64  `gorm:"column:pro_seq;primaryKey;autoIncrement" json:"pro_seq"`
	MemberSeq int64  `gorm:"column:member_seq;not null;index" json:"member_seq"`
	ProName   string `gorm:"column:pro_name" json:"pro_name"`
	Activate  string `gorm:"column:activate;type:char(1);not null;default:'Y'" json:"activate"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Project) TableName() string { return "project" }
