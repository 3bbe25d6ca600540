// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "strings"

// Category classifies a post. The set is closed: values outside it are
// rejected at the handler boundary and by a database CHECK constraint.
type Category string

const (
	CategoryAgriculture   Category = "Agriculture"
	CategoryBusiness      Category = "Business"
	CategoryEducation     Category = "Education"
	CategoryEntertainment Category = "Entertainment"
	CategoryArt           Category = "Art"
	CategoryInvestment    Category = "Investment"
	CategoryUncategorized Category = "Uncategorized"
	CategoryWeather       Category = "Weather"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryAgriculture,
	CategoryBusiness,
	CategoryEducation,
	CategoryEntertainment,
	CategoryArt,
	CategoryInvestment,
	CategoryUncategorized,
	CategoryWeather,
}

// ParseCategory matches s against the closed set, ignoring case, and
// returns the canonical value. ok is false for anything outside the set.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) {
			return c, true
		}
	}
	return "", false
}

// Valid reports whether c is one of the closed set.
func (c Category) Valid() bool {
	_, ok := ParseCategory(string(c))
	return ok
}
