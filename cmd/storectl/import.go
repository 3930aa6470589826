package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/jhoicas/tienda-api/internal/application/catalog"
)

const (
	fileFlag   = "file"
	latin1Flag = "latin1"
)

var importFlags = map[string]cobraflags.Flag{
	fileFlag: &cobraflags.StringFlag{
		Name:  fileFlag,
		Usage: "CSV con cabecera title,price,images,... (obligatorio)",
	},
	latin1Flag: &cobraflags.StringFlag{
		Name:  latin1Flag,
		Value: "false",
		Usage: "true si el archivo viene en Windows-1252 (exportaciones de hojas de cálculo)",
	},
}

func newImportCommand() *cobra.Command {
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Importar productos desde un CSV heredado",
		Long: `Crea un producto por fila. Las columnas images, tags, sizes y colors aceptan
JSON o valores separados por coma. Las filas inválidas se reportan con su número
de línea y no detienen la importación.`,
		RunE: importCommand,
	}
	cobraflags.RegisterMap(importCmd, importFlags)
	return importCmd
}

func importCommand(cmd *cobra.Command, _ []string) error {
	path := importFlags[fileFlag].GetString()
	if path == "" {
		return errors.New("--file es obligatorio")
	}
	latin1, err := strconv.ParseBool(importFlags[latin1Flag].GetString())
	if err != nil {
		return fmt.Errorf("--latin1: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	e, err := openEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer e.store.Close()

	uc := catalog.NewUseCase(e.store.Products, catalog.Defaults{SizeRange: e.sizes})
	res, err := uc.Import(cmd.Context(), f, catalog.ImportOptions{Latin1: latin1})
	if err != nil {
		return err
	}
	e.log.Info().Int("created", len(res.Created)).Int("failed", len(res.Failed)).Msg("importación terminada")

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
