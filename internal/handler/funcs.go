package handler

import (
	"html/template"
	"strings"

	"github.com/duvindu/saffron/internal/currency"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// TemplateFuncs returns the helper functions available to all templates.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"refPrice":  currency.FormatRef,
		"heatLabel": heatLabel,
		"title":     titleCase,
		"uuid":      uuidString,
		"list":      func(items ...string) []string { return items },
		"divCents":  func(cents int64) float64 { return float64(cents) / 100 },
	}
}

func uuidString(id pgtype.UUID) string {
	if !id.Valid {
		return ""
	}
	u, err := uuid.FromBytes(id.Bytes[:])
	if err != nil {
		return ""
	}
	return u.String()
}

// heatLabel renders a heat level as pepper marks for the product cards.
func heatLabel(level string) string {
	marks := map[string]int{"mild": 1, "medium": 2, "hot": 3, "extra-hot": 4}
	n, ok := marks[level]
	if !ok {
		return titleCase(level)
	}
	return strings.Repeat("\U0001F336", n)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
