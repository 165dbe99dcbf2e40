package models

// PaymentCard платёжная карта пользователя. Среди включённых карт одного
// пользователя ровно одна основная (IsMainPayment), если карты вообще есть.
// Password хранит bcrypt-хэш и наружу не отдаётся.
type PaymentCard struct {
	ID            int64  `json:"id"`
	UserID        string `json:"-"`
	Number        string `json:"number"`
	Password      string `json:"-"`
	ExpMonth      string `json:"exp_month"`
	ExpYear       string `json:"exp_year"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Birth         string `json:"birth"`
	IsMainPayment bool   `json:"is_main_payment"`
	Enabled       bool   `json:"-"`
}

// DummyCard используется для приёма данных карты из JSON-запроса.
type DummyCard struct {
	Number   string `json:"number" validate:"required,numeric,min=12,max=19"`
	Password string `json:"password" validate:"required,numeric,len=2"`
	ExpMonth string `json:"exp_month" validate:"required,numeric,len=2"`
	ExpYear  string `json:"exp_year" validate:"required,numeric,len=2"`
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required,numeric"`
	Birth    string `json:"birth" validate:"required,numeric"`
}

// CardPage параметры постраничной выборки карт.
type CardPage struct {
	Page   int
	Amount int
}

// CardList страница карт и общее число включённых карт пользователя.
type CardList struct {
	Cards []*PaymentCard `json:"cards"`
	Count int            `json:"count"`
}
