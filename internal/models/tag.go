package models

// Tag and TaskTag are migrated but not exposed by any operation yet.
type Tag struct {
	ID    uint64 `gorm:"primarykey" json:"id"`
	Name  string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Color string `gorm:"type:varchar(16);default:'#6b7280'" json:"color"`
}

type TaskTag struct {
	TaskID uint64 `gorm:"primarykey" json:"taskId"`
	TagID  uint64 `gorm:"primarykey" json:"tagId"`

	// Relations
	Task *Task `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"-"`
	Tag  *Tag  `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE" json:"-"`
}
