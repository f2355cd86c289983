package models

import (
	"slices"

	"github.com/dmitrijs2005/devlog/internal/api"
)

// Categories is the fixed set of topic tags shared by challenges and entries.
var Categories = api.Categories

func IsValidCategory(c string) bool {
	return slices.Contains(Categories, c)
}
