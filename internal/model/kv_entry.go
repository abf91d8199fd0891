// internal/model/kv_entry.go
package model

import "time"

// KVEntry は永続ストア（キー・バリュー）の1レコードです
type KVEntry struct {
	Key       string    `gorm:"column:entry_key;primaryKey;type:varchar(255)"`
	Value     []byte    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (KVEntry) TableName() string {
	return "kv_entries"
}
