package main

import (
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplicar las migraciones pendientes del driver configurado",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.store.Close()

			applied, err := e.store.Migrate(cmd.Context())
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				e.log.Info().Str("driver", e.store.Driver).Msg("sin migraciones pendientes")
				return nil
			}
			e.log.Info().Str("driver", e.store.Driver).Strs("versions", applied).Msg("migraciones aplicadas")
			return nil
		},
	}
}
