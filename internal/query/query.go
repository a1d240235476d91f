// Package query turns list query-string parameters (page, pageSize, filtered,
// sorted) into GORM scopes restricted to a per-entity column whitelist.
package query

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"streamhouse/api/internal/constants"
)

// Kind controls how a filter value is matched against a column.
type Kind int

const (
	// Text columns match case-insensitively on a substring.
	Text Kind = iota
	// Exact columns match by equality on the raw value.
	Exact
	Bool
	Int
)

// Columns is the whitelist of filterable/sortable columns of an entity.
type Columns map[string]Kind

type Filter struct {
	ID    string      `json:"id"`
	Value interface{} `json:"value"`
}

type Sort struct {
	ID   string `json:"id"`
	Desc bool   `json:"desc"`
}

type Params struct {
	Page     int
	PageSize int
	Filtered []Filter
	Sorted   []Sort
}

// Parse reads list parameters from a query string. Malformed values fall
// back to defaults rather than failing the request.
func Parse(v url.Values) Params {
	p := Params{
		Page:     constants.DefaultPage,
		PageSize: constants.DefaultPageSize,
	}

	if n, err := strconv.Atoi(v.Get("page")); err == nil && n > 0 {
		p.Page = n
	}
	if n, err := strconv.Atoi(v.Get("pageSize")); err == nil && n > 0 {
		p.PageSize = n
	}
	if p.PageSize > constants.MaxPageSize {
		p.PageSize = constants.MaxPageSize
	}

	if raw := v.Get("filtered"); raw != "" {
		var filters []Filter
		if err := json.Unmarshal([]byte(raw), &filters); err == nil {
			p.Filtered = filters
		}
	}
	if raw := v.Get("sorted"); raw != "" {
		var sorts []Sort
		if err := json.Unmarshal([]byte(raw), &sorts); err == nil {
			p.Sorted = sorts
		}
	}
	return p
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Where applies the whitelisted filters.
func (p Params) Where(cols Columns) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, f := range p.Filtered {
			kind, ok := cols[f.ID]
			if !ok || f.Value == nil {
				continue
			}
			raw := strings.TrimSpace(fmt.Sprint(f.Value))
			if raw == "" {
				continue
			}

			col := clause.Column{Name: f.ID}
			switch kind {
			case Text:
				db = db.Where("LOWER(?) LIKE ?", col, "%"+strings.ToLower(raw)+"%")
			case Bool:
				b, err := strconv.ParseBool(raw)
				if err != nil {
					continue
				}
				db = db.Where(clause.Eq{Column: col, Value: b})
			case Int:
				n, err := strconv.Atoi(raw)
				if err != nil {
					continue
				}
				db = db.Where(clause.Eq{Column: col, Value: n})
			default:
				db = db.Where(clause.Eq{Column: col, Value: raw})
			}
		}
		return db
	}
}

// OrderBy applies the whitelisted sort columns, or created_at desc.
func (p Params) OrderBy(cols Columns) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		applied := false
		for _, s := range p.Sorted {
			if _, ok := cols[s.ID]; !ok && s.ID != "created_at" && s.ID != "updated_at" {
				continue
			}
			db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: s.ID}, Desc: s.Desc})
			applied = true
		}
		if !applied {
			db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: "created_at"}, Desc: true})
		}
		return db
	}
}

// Paginate applies offset/limit.
func (p Params) Paginate() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(p.Offset()).Limit(p.PageSize)
	}
}
