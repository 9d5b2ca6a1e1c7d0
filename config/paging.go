package config

import (
	"github.com/ncobase/relaypage/paging"
	"github.com/spf13/viper"
)

// Paging holds the defaults applied to every resolve.
type Paging struct {
	// DefaultPageSize applies when a request gives neither first nor last.
	// 0 returns everything, the way the Relay contract reads.
	DefaultPageSize int `json:"default_page_size" validate:"gte=0"`
	// MaxPageSize clamps larger requests. 0 disables clamping.
	MaxPageSize int `json:"max_page_size" validate:"gte=0"`
	// TieBreakField is the unique field completing every sort order.
	TieBreakField string `json:"tie_break_field" validate:"required"`
}

// Limits returns the page size limits.
func (p *Paging) Limits() paging.Limits {
	return paging.Limits{DefaultPageSize: p.DefaultPageSize, MaxPageSize: p.MaxPageSize}
}

func getPagingConfig(v *viper.Viper) *Paging {
	return &Paging{
		DefaultPageSize: v.GetInt("paging.default_page_size"),
		MaxPageSize:     v.GetInt("paging.max_page_size"),
		TieBreakField:   getStringOrDefault(v, "paging.tie_break_field", paging.DefaultTieBreakField),
	}
}
