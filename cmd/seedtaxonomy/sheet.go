package main

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"hejazi/internal/domain"
)

// Columns of the taxonomy sheet. Row 0 is the header. A blank code cell
// repeats the value of the row above, matching how merged cells export.
const (
	colServiceCode = iota
	colServiceAR
	colServiceEN
	colSubCode
	colSubAR
	colSubEN
	colLeafCode
	colLeafAR
	colLeafEN
)

// seedNode is one taxonomy node read from the sheet, in parent-first order.
type seedNode struct {
	Level      domain.TaxonomyLevel
	Code       string
	ParentCode string
	NameAR     string
	NameEN     string
	SortOrder  int
	Row        int
}

// readSheet opens path and parses the named sheet, or the first sheet when
// name is empty.
func readSheet(path, name string) ([]seedNode, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if name == "" {
		name = f.GetSheetName(0)
	}
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", name, err)
	}
	return parseRows(rows)
}

// parseRows turns sheet rows into nodes. Each code appears once; sort order
// follows first appearance within the parent.
func parseRows(rows [][]string) ([]seedNode, error) {
	var (
		nodes    []seedNode
		seen     = make(map[string]domain.TaxonomyLevel)
		children = make(map[string]int)
		svc, sub string
	)

	add := func(level domain.TaxonomyLevel, code, parent, ar, en string, row int) error {
		key := strings.ToUpper(code)
		if prev, ok := seen[key]; ok {
			if prev != level {
				return fmt.Errorf("row %d: code %q used at both %s and %s", row, code, prev, level)
			}
			return nil
		}
		if ar == "" {
			return fmt.Errorf("row %d: %s %q has no Arabic name", row, level, code)
		}
		seen[key] = level
		children[parent]++
		nodes = append(nodes, seedNode{
			Level:      level,
			Code:       code,
			ParentCode: parent,
			NameAR:     ar,
			NameEN:     en,
			SortOrder:  children[parent],
			Row:        row,
		})
		return nil
	}

	for i := 1; i < len(rows); i++ {
		row := rows[i]
		rowNum := i + 1
		if isBlank(row) {
			continue
		}

		if code := cell(row, colServiceCode); code != "" {
			if err := add(domain.LevelService, code, "", cell(row, colServiceAR), cell(row, colServiceEN), rowNum); err != nil {
				return nil, err
			}
			svc, sub = code, ""
		}

		if code := cell(row, colSubCode); code != "" {
			if svc == "" {
				return nil, fmt.Errorf("row %d: sub-service %q has no service", rowNum, code)
			}
			if err := add(domain.LevelSubService, code, svc, cell(row, colSubAR), cell(row, colSubEN), rowNum); err != nil {
				return nil, err
			}
			sub = code
		}

		if code := cell(row, colLeafCode); code != "" {
			if sub == "" {
				return nil, fmt.Errorf("row %d: sub-sub-service %q has no sub-service", rowNum, code)
			}
			if err := add(domain.LevelSubSubService, code, sub, cell(row, colLeafAR), cell(row, colLeafEN), rowNum); err != nil {
				return nil, err
			}
		}
	}
	return nodes, nil
}

func cell(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
