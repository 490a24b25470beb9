package domain

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

type Product struct {
	ID       int64
	Name     string
	Category string
	Vendor   string
	Price    string
	Features []string
	ImageURL string
}

// A Price is the numeric view of a free-form price string.
//
// Unbounded prices ("Custom Pricing" or no digits at all) never fit under a
// ceiling.
type Price struct {
	Amount    float64
	Unbounded bool
}

var priceDigits = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)

// ParsePrice extracts the first number from s.
//
// "Free" wins over any digits in the same string so that
// "Free Tier Available" and "Free for 5 users" both read as 0.
func ParsePrice(s string) Price {
	folded := fold(s)
	switch {
	case strings.Contains(folded, "free"):
		return Price{Amount: 0}
	case strings.Contains(folded, "custom"):
		return Price{Amount: math.Inf(1), Unbounded: true}
	}

	m := priceDigits.FindString(s)
	if m == "" {
		return Price{Amount: math.Inf(1), Unbounded: true}
	}
	amount, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
	if err != nil {
		return Price{Amount: math.Inf(1), Unbounded: true}
	}
	return Price{Amount: amount}
}

func (p Price) Within(ceiling float64) bool {
	return !p.Unbounded && p.Amount <= ceiling
}

// HasFeature reports whether the product lists feature, ignoring case.
func (p Product) HasFeature(feature string) bool {
	want := fold(strings.TrimSpace(feature))
	for _, f := range p.Features {
		if fold(f) == want {
			return true
		}
	}
	return false
}

func (p Product) matchesText(foldedQuery string) bool {
	if strings.Contains(fold(p.Name), foldedQuery) ||
		strings.Contains(fold(p.Category), foldedQuery) {
		return true
	}
	for _, f := range p.Features {
		if strings.Contains(fold(f), foldedQuery) {
			return true
		}
	}
	return false
}

// SplitFeatures turns a comma-separated feature line into a clean list.
func SplitFeatures(s string) []string {
	return CleanFeatures(strings.Split(s, ","))
}

func CleanFeatures(fs []string) []string {
	out := make([]string, 0, len(fs))
	for _, f := range fs {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// fold is not cached: a [cases.Caser] must not be shared between goroutines.
func fold(s string) string {
	return cases.Fold().String(s)
}

// Fold is the case-insensitive key used for search terms.
func Fold(s string) string {
	return fold(strings.TrimSpace(s))
}
