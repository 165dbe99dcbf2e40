package models

// Water товар (вода), на который оформляется подписка. Справочные данные,
// сервисом не изменяются.
type Water struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Price int    `json:"price"`
}
