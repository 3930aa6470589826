package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/tienda-api/internal/domain/catalog"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}

// renderAssignments arma "col1 = $1, col2 = $2" y los argumentos en el mismo orden.
func renderAssignments(as []catalog.Assignment) (string, []any) {
	parts := make([]string, 0, len(as))
	args := make([]any, 0, len(as)+1)
	for i, a := range as {
		parts = append(parts, fmt.Sprintf("%s = $%d", a.Column, i+1))
		args = append(args, a.Value)
	}
	return strings.Join(parts, ", "), args
}

// renderInsert arma la lista de columnas y de placeholders de un INSERT.
func renderInsert(as []catalog.Assignment) (cols, placeholders string, args []any) {
	c := make([]string, 0, len(as))
	p := make([]string, 0, len(as))
	args = make([]any, 0, len(as))
	for i, a := range as {
		c = append(c, a.Column)
		p = append(p, fmt.Sprintf("$%d", i+1))
		args = append(args, a.Value)
	}
	return strings.Join(c, ", "), strings.Join(p, ", "), args
}
