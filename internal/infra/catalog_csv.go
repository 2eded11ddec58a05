package infra

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"prodplan/internal/model"
)

var requiredCatalogColumns = []string{"ligne", "reference"}

// ParseCatalogCSV reads a product catalog export. The header row names the
// columns (case-insensitive): ligne and reference are required, image_url
// and image_original_name are optional. ';' and ',' separators are accepted.
func ParseCatalogCSV(r io.Reader) ([]model.Product, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := strings.TrimPrefix(string(raw), "\ufeff")

	cr := csv.NewReader(strings.NewReader(text))
	cr.Comma = detectSeparator(text)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("catalog: empty file")
	}
	if err != nil {
		return nil, fmt.Errorf("catalog header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range requiredCatalogColumns {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("catalog: missing column %q", c)
		}
	}

	var products []model.Product
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("catalog line %d: %w", line, err)
		}
		p := model.Product{
			Ligne:     field(rec, cols, "ligne"),
			Reference: field(rec, cols, "reference"),
		}
		if p.Ligne == "" || p.Reference == "" {
			return nil, fmt.Errorf("catalog line %d: ligne and reference are required", line)
		}
		if v := field(rec, cols, "image_url"); v != "" {
			p.ImageURL = &v
		}
		if v := field(rec, cols, "image_original_name"); v != "" {
			p.ImageOriginalName = &v
		}
		products = append(products, p)
	}
	return products, nil
}

func detectSeparator(text string) rune {
	first, _, _ := strings.Cut(text, "\n")
	if strings.Count(first, ";") > strings.Count(first, ",") {
		return ';'
	}
	return ','
}

func field(rec []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}
