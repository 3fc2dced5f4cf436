package catalog

import (
	"sort"
)

// NutrientDB 唯讀營養資料庫，以標準 slug 為鍵
type NutrientDB struct {
	entries map[string]NutrientEntry
	keys    []string
}

// NewNutrientDB 建立資料庫；每筆條目的鍵由 aliases.Key(Label) 推導，重複時保留第一筆
func NewNutrientDB(items []NutrientEntry, aliases *AliasTable) *NutrientDB {
	db := &NutrientDB{entries: make(map[string]NutrientEntry, len(items))}
	for _, item := range items {
		key := aliases.Key(item.Label)
		if key == "" || item.KcalPer100g < 0 {
			continue
		}
		if _, exists := db.entries[key]; exists {
			continue
		}
		if item.DefaultWeightG < 0 {
			item.DefaultWeightG = 0
		}
		item.Key = key
		db.entries[key] = item
		db.keys = append(db.keys, key)
	}
	sort.Strings(db.keys)
	return db
}

// Lookup 以標準鍵精確查詢
func (db *NutrientDB) Lookup(key string) (NutrientEntry, bool) {
	if db == nil {
		return NutrientEntry{}, false
	}
	e, ok := db.entries[key]
	return e, ok
}

// Has 是否為資料庫中的單一食材
func (db *NutrientDB) Has(key string) bool {
	_, ok := db.Lookup(key)
	return ok
}

// Keys 依字母排序的所有鍵
func (db *NutrientDB) Keys() []string {
	if db == nil {
		return nil
	}
	return db.keys
}

// Len 條目數
func (db *NutrientDB) Len() int {
	if db == nil {
		return 0
	}
	return len(db.entries)
}
