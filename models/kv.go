package models

// KVEntry is one row of the key-value namespace. Value holds a JSON document.
type KVEntry struct {
	Key   string `gorm:"primaryKey"`
	Value string `gorm:"type:text;not null"`
}

// TableName keeps the table name stable regardless of gorm's pluralization.
func (KVEntry) TableName() string { return "kv_store" }
