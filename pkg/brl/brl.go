// Package brl formatea valores para mensajes y recibos en português do Brasil.
package brl

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Money formatea como "R$ 1.234,50".
func Money(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return "R$ " + printer.Sprint(number.Decimal(f, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// Int formatea con separador de miles ("1.234").
func Int(n int) string {
	return printer.Sprint(number.Decimal(n))
}

// Date formatea como dd/mm/aaaa.
func Date(t time.Time) string {
	return t.Format("02/01/2006")
}

// DateTime formatea como dd/mm/aaaa hh:mm.
func DateTime(t time.Time) string {
	return t.Format("02/01/2006 15:04")
}
