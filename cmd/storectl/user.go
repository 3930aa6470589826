package main

import (
	"errors"
	"os"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

const (
	emailFlag      = "email"
	passwordFlag   = "password"
	nameFlag       = "name"
	lastnameFlag   = "lastname"
	phoneFlag      = "phone"
	addressFlag    = "address"
	houseAptFlag   = "house-apt"
	cityFlag       = "city"
	stateFlag      = "state"
	postalCodeFlag = "postal-code"
)

var userFlags = map[string]cobraflags.Flag{
	emailFlag:      &cobraflags.StringFlag{Name: emailFlag, Usage: "Email de acceso (obligatorio)"},
	passwordFlag:   &cobraflags.StringFlag{Name: passwordFlag, Usage: "Password en claro; si se omite se lee STORECTL_PASSWORD"},
	nameFlag:       &cobraflags.StringFlag{Name: nameFlag, Usage: "Nombre"},
	lastnameFlag:   &cobraflags.StringFlag{Name: lastnameFlag, Usage: "Apellido"},
	phoneFlag:      &cobraflags.StringFlag{Name: phoneFlag, Usage: "Teléfono"},
	addressFlag:    &cobraflags.StringFlag{Name: addressFlag, Usage: "Dirección"},
	houseAptFlag:   &cobraflags.StringFlag{Name: houseAptFlag, Usage: "Casa / apartamento"},
	cityFlag:       &cobraflags.StringFlag{Name: cityFlag, Usage: "Ciudad"},
	stateFlag:      &cobraflags.StringFlag{Name: stateFlag, Usage: "Departamento / estado"},
	postalCodeFlag: &cobraflags.StringFlag{Name: postalCodeFlag, Usage: "Código postal"},
}

func newUserCommand() *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Administrar credenciales",
	}
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Dar de alta una credencial con password bcrypt",
		RunE:  userAddCommand,
	}
	cobraflags.RegisterMap(addCmd, userFlags)
	userCmd.AddCommand(addCmd)
	return userCmd
}

func userAddCommand(cmd *cobra.Command, _ []string) error {
	email := userFlags[emailFlag].GetString()
	if email == "" {
		return errors.New("--email es obligatorio")
	}
	password := userFlags[passwordFlag].GetString()
	if password == "" {
		password = os.Getenv("STORECTL_PASSWORD")
	}
	if password == "" {
		return errors.New("--password o STORECTL_PASSWORD es obligatorio")
	}

	e, err := openEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer e.store.Close()

	uc := auth.NewAuthUseCase(e.store.Users, auth.JWTConfig{
		Secret:     e.cfg.JWT.Secret,
		ExpMinutes: e.cfg.JWT.Expiration,
		Issuer:     e.cfg.JWT.Issuer,
	})
	user := &entity.User{
		Email:      email,
		Name:       userFlags[nameFlag].GetString(),
		Lastname:   userFlags[lastnameFlag].GetString(),
		Phone:      userFlags[phoneFlag].GetString(),
		Address:    userFlags[addressFlag].GetString(),
		HouseApt:   userFlags[houseAptFlag].GetString(),
		City:       userFlags[cityFlag].GetString(),
		State:      userFlags[stateFlag].GetString(),
		PostalCode: userFlags[postalCodeFlag].GetString(),
	}
	id, err := uc.CreateUser(cmd.Context(), user, password)
	if err != nil {
		return err
	}
	e.log.Info().Int64("user_id", id).Str("email", user.Email).Msg("credencial creada")
	return nil
}
