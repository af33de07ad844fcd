// Package export renders variations as the CSV sheet stock agencies accept for bulk upload.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mahmudulbisd/stockgen-ai-pro/models"
)

// ContentType is the media type of Marshal's output.
const ContentType = "text/csv;charset=utf-8"

var header = []string{"Variation", "Title", "Description", "Keywords", "Prompt"}

// ErrNoVariations is returned when there is nothing to export.
var ErrNoVariations = errors.New("no variations to export")

// Marshal renders one row per variation under a fixed header. Text fields are
// always quoted with embedded quotes doubled; absent fields become "". Rows are
// separated by "\n" with no trailing newline.
func Marshal(variations []models.StockAssetVariation) (string, error) {
	if len(variations) == 0 {
		return "", ErrNoVariations
	}

	rows := make([]string, 0, len(variations)+1)
	rows = append(rows, strings.Join(header, ","))
	for _, v := range variations {
		rows = append(rows, strings.Join([]string{
			fmt.Sprintf("V%d", v.VariationIndex),
			quote(v.Title),
			quote(v.Description),
			quote(v.Keywords),
			quote(v.ImagePrompt),
		}, ","))
	}
	return strings.Join(rows, "\n"), nil
}

// Write writes Marshal's output to w.
func Write(w io.Writer, variations []models.StockAssetVariation) error {
	out, err := Marshal(variations)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// FileName returns the download name for an export made at t.
func FileName(t time.Time) string {
	return fmt.Sprintf("stock_metadata_%d.csv", t.UnixMilli())
}

func quote(field *string) string {
	return `"` + strings.ReplaceAll(models.Deref(field), `"`, `""`) + `"`
}
