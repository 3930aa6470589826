package entity

import "strconv"

// User credencial de un cliente de la tienda. La tabla users es externa: aquí solo se lee.
type User struct {
	ID           int64
	Email        string
	PasswordHash string // bcrypt; nunca se compara en texto plano
	Name         string
	Lastname     string
	Phone        string
	Address      string
	HouseApt     string
	City         string
	State        string
	PostalCode   string
}

// Profile datos del usuario que viajan en la sesión (todo excepto el password).
type Profile struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Lastname   string `json:"lastname"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	HouseApt   string `json:"house_apt"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}

// Profile devuelve la vista pública del usuario.
func (u *User) Profile() Profile {
	return Profile{
		ID:         strconv.FormatInt(u.ID, 10),
		Name:       u.Name,
		Lastname:   u.Lastname,
		Email:      u.Email,
		Phone:      u.Phone,
		Address:    u.Address,
		HouseApt:   u.HouseApt,
		City:       u.City,
		State:      u.State,
		PostalCode: u.PostalCode,
	}
}
