package models

// Address адрес доставки, хранится в записи пользователя.
type Address struct {
	Address               string `json:"address" validate:"required"`
	DetailAddress         string `json:"detail_address"`
	AddressPublicPassword string `json:"address_public_password"`
}
