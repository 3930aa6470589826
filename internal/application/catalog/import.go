package catalog

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
)

// ImportOptions opciones de importación de exportaciones heredadas (CSV).
type ImportOptions struct {
	// Latin1 decodifica el archivo como Windows-1252 (exportaciones de hojas de cálculo).
	Latin1 bool
}

// columnas de lista: en el CSV pueden venir como JSON ("[...]") o separadas por coma.
var listColumns = map[string]bool{"images": true, "tags": true, "sizes": true, "colors": true}

// Import crea un producto por fila del CSV. La primera fila es la cabecera con las claves
// JSON del producto (title, price, images, ...). Las filas inválidas se reportan con su
// número de línea y no detienen el resto.
func (uc *UseCase) Import(ctx context.Context, r io.Reader, opts ImportOptions) (*dto.ImportResult, error) {
	if opts.Latin1 {
		r = transform.NewReader(r, charmap.Windows1252.NewDecoder())
	}
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: CSV vacío", domain.ErrInvalidInput)
		}
		return nil, fmt.Errorf("%w: cabecera CSV: %v", domain.ErrInvalidInput, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	result := &dto.ImportResult{Created: []int64{}, Failed: []dto.ImportError{}}
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			result.Failed = append(result.Failed, dto.ImportError{Line: line, Error: err.Error()})
			continue
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}
		body, err := json.Marshal(rowToObject(header, record))
		if err != nil {
			result.Failed = append(result.Failed, dto.ImportError{Line: line, Error: err.Error()})
			continue
		}
		p, err := uc.Create(ctx, body)
		if err != nil {
			var verr *domain.ValidationError
			if !errors.As(err, &verr) && !errors.Is(err, domain.ErrInvalidInput) {
				return result, fmt.Errorf("línea %d: %w", line, err)
			}
			result.Failed = append(result.Failed, dto.ImportError{Line: line, Error: err.Error()})
			continue
		}
		result.Created = append(result.Created, p.ID)
	}
	return result, nil
}

// rowToObject arma el objeto JSON de una fila; las celdas vacías se omiten.
func rowToObject(header, record []string) map[string]any {
	obj := make(map[string]any, len(header))
	for i, key := range header {
		if key == "" || i >= len(record) {
			continue
		}
		cell := strings.TrimSpace(record[i])
		if cell == "" {
			continue
		}
		switch {
		case listColumns[key]:
			if strings.HasPrefix(cell, "[") && json.Valid([]byte(cell)) {
				obj[key] = json.RawMessage(cell)
			} else {
				obj[key] = splitCells(cell)
			}
		case key == "sizeRange" && json.Valid([]byte(cell)):
			obj[key] = json.RawMessage(cell)
		default:
			obj[key] = cell
		}
	}
	return obj
}

func splitCells(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}
