// Package models содержит доменные структуры сервиса доставки воды по подписке:
// товар (воду), платёжную карту и адрес доставки, а также структуры для
// приёма данных из JSON-запросов.
package models

import "time"

// WaterOptions новые параметры подписки пользователя: товар, количество и цикл доставки.
type WaterOptions struct {
	WaterID     int64 `json:"water_id" validate:"required,gt=0"`
	WaterAmount int   `json:"water_amount" validate:"required,gt=0"`
	WaterCycle  int   `json:"water_cycle" validate:"required,gt=0"`
}

// DeliveryDate запрос на фиксацию ожидаемой даты доставки.
type DeliveryDate struct {
	DeliveredAt time.Time `json:"delivered_at" validate:"required"`
}
