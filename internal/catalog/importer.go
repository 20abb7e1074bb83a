package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kylasweb/IOC-Spinwheel/internal/domain"
)

// Recognized CSV headers, matched case-insensitively
const (
	HeaderLabel       = "label"
	HeaderColor       = "color"
	HeaderTextColor   = "textcolor"
	HeaderIcon        = "icon"
	HeaderDescription = "description"
	HeaderCategory    = "category"
)

var upper = cases.Upper(language.Und)

// ParseCSV maps rows onto prizes. Rows without a label are skipped and a
// missing or unknown category becomes TRY_AGAIN.
func ParseCSV(r io.Reader) ([]domain.Prize, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read csv header: %v", domain.ErrInvalidInput, err)
	}

	columns := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, ok := columns[h]; !ok {
			columns[h] = i
		}
	}
	if _, ok := columns[HeaderLabel]; !ok {
		return nil, fmt.Errorf("%w: csv has no %q column", domain.ErrInvalidInput, HeaderLabel)
	}

	var prizes []domain.Prize
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read csv row: %v", domain.ErrInvalidInput, err)
		}

		field := func(name string) string {
			i, ok := columns[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		label := field(HeaderLabel)
		if label == "" {
			continue
		}
		prizes = append(prizes, domain.Prize{
			ID:          uuid.NewString(),
			Label:       label,
			Category:    ParseCategory(field(HeaderCategory)),
			Color:       field(HeaderColor),
			TextColor:   field(HeaderTextColor),
			Icon:        field(HeaderIcon),
			Description: field(HeaderDescription),
		})
	}
	return prizes, nil
}

// ParseCategory accepts "grand", "Try Again", "try-again", "DROPLETS" and so on
func ParseCategory(s string) domain.Category {
	normalized := upper.String(strings.TrimSpace(s))
	normalized = strings.NewReplacer(" ", "_", "-", "_").Replace(normalized)

	switch c := domain.Category(normalized); {
	case c.Valid():
		return c
	case normalized == "TRYAGAIN":
		return domain.CategoryTryAgain
	case normalized == "DROPLET":
		return domain.CategoryDroplets
	default:
		return domain.CategoryTryAgain
	}
}
