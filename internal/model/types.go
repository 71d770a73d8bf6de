// Package model defines shared data structures.
package model

import "time"

// Config defines resolved runtime settings.
type Config struct {
	DefaultConfidence int
	Source            string
	ExtraQuotesPath   string
	Seed              int64

	CounterDefault    int
	TickInterval      time.Duration
	FluctuateInterval time.Duration

	ChatMax        int
	FloatingMax    int
	FloatingTTL    time.Duration
	FloatingChance float64

	SiteURL  string
	TokenURL string
	ShareURL string
	// ContractAddress is copied by the copy-contract action. Empty disables it.
	ContractAddress string

	LogLevel string
	LogFile  string
}

// Category selects which quote pool a generation draws from.
type Category int

const (
	CategoryAll Category = iota
	CategoryFunny
	CategoryPolitical
	CategoryRumor
)

func (c Category) String() string {
	switch c {
	case CategoryFunny:
		return "funny"
	case CategoryPolitical:
		return "political"
	case CategoryRumor:
		return "rumor"
	default:
		return "all"
	}
}

// Record is the result of one generation request. It is never persisted.
type Record struct {
	Category   Category
	Phrase     string
	Source     string
	Evidence   string
	Confidence int
}
