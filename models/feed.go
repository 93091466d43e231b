package models

type Headline struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ExchangeRates struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}
