package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// renderTable writes v as a bordered table. Lists of objects get one row
// per element; a single object is shown as KEY/VALUE pairs. columns fixes
// the column order and selection; nil means all keys, sorted. cells
// overrides how the named fields are printed.
func renderTable(w io.Writer, v any, columns []string, cells map[string]CellFunc, s Styles) error {
	data, err := normalize(v)
	if err != nil {
		return err
	}

	var headers []string
	var rows [][]string
	switch d := data.(type) {
	case []any:
		if len(d) == 0 {
			_, err := fmt.Fprintln(w, s.Help.Render("(empty)"))
			return err
		}
		keys := columns
		if keys == nil {
			keys = unionKeys(d)
		}
		if keys == nil {
			headers = []string{"VALUE"}
			for _, item := range d {
				rows = append(rows, []string{cell(item)})
			}
			break
		}
		for _, k := range keys {
			headers = append(headers, strings.ToUpper(k))
		}
		for _, item := range d {
			m, _ := item.(map[string]any)
			row := make([]string, len(keys))
			for i, k := range keys {
				row[i] = fieldCell(cells, k, m[k])
			}
			rows = append(rows, row)
		}
	case map[string]any:
		keys := columns
		if keys == nil {
			keys = sortedKeys(d)
		}
		headers = []string{"KEY", "VALUE"}
		for _, k := range keys {
			rows = append(rows, []string{k, fieldCell(cells, k, d[k])})
		}
	default:
		_, err := fmt.Fprintln(w, cell(d))
		return err
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(s.Border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.Header
			}
			return s.Cell
		})
	_, err = fmt.Fprintln(w, t.Render())
	return err
}

// normalize converts v into the generic JSON value space (map[string]any,
// []any, float64, string, bool, nil), honoring json struct tags.
func normalize(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to format output: %w", err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to format output: %w", err)
	}
	return out, nil
}

// unionKeys returns the sorted keys of all object elements, or nil if
// any element is not an object.
func unionKeys(items []any) []string {
	seen := make(map[string]bool)
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil
		}
		for k := range m {
			seen[k] = true
		}
	}
	return sortedKeys(seen)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func fieldCell(cells map[string]CellFunc, key string, v any) string {
	if fn, ok := cells[key]; ok {
		return fn(v)
	}
	return cell(v)
}

func cell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		data, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(data)
	}
}
