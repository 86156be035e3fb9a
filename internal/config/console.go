package config

type Console struct {
	Title          string `env:"CONSOLE_TITLE" envDefault:"Smart Inventory"`
	CurrencySymbol string `env:"CONSOLE_CURRENCY_SYMBOL" envDefault:"₹"`
	TimeFormat     string `env:"CONSOLE_TIME_FORMAT" envDefault:"2006-01-02 15:04:05"`
}
