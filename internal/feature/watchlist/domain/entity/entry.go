// Package entity defines the domain models for the watchlist feature.
package entity

import "time"

// Entry is one company on a named watchlist (the target of an "@list" palette command).
type Entry struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	List      string    `gorm:"size:64;not null;uniqueIndex:idx_watchlist_list_company;uniqueIndex:idx_watchlist_list_sort" json:"list"`
	CompanyID string    `gorm:"size:128;not null;uniqueIndex:idx_watchlist_list_company" json:"company_id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	IsActive  bool      `gorm:"not null;default:true" json:"-"`
	SortKey   int       `gorm:"not null;default:0;uniqueIndex:idx_watchlist_list_sort" json:"sort_key"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName returns the table name for GORM.
func (Entry) TableName() string {
	return "watchlist_entries"
}
