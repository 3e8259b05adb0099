// Package messages holds the user-facing strings for cart notifications and
// the locale used to render prices.
package messages

import (
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rafaelleal24/rocketshoes/internal/core/domain"
)

type Key int

const (
	ProductAdded Key = iota
	ProductRemoved
	ProductAmountUpdated
	OutOfStock
	AddFailed
	RemoveFailed
	UpdateFailed
	PersistFailed
)

var supported = []language.Tag{
	language.English,
	language.BrazilianPortuguese,
}

var matcher = language.NewMatcher(supported)

var translations = map[language.Tag]map[Key]string{
	language.English: {
		ProductAdded:         "Product added to cart",
		ProductRemoved:       "Product removed from cart",
		ProductAmountUpdated: "Product quantity updated",
		OutOfStock:           "out of stock quantity requested",
		AddFailed:            "error adding product",
		RemoveFailed:         "error removing product",
		UpdateFailed:         "error changing product quantity",
		PersistFailed:        "error saving cart",
	},
	language.BrazilianPortuguese: {
		ProductAdded:         "Produto adicionado ao carrinho",
		ProductRemoved:       "Produto removido do carrinho",
		ProductAmountUpdated: "Quantidade do produto atualizada",
		OutOfStock:           "Quantidade solicitada fora de estoque",
		AddFailed:            "Erro na adição do produto",
		RemoveFailed:         "Erro na remoção do produto",
		UpdateFailed:         "Erro na alteração de quantidade do produto",
		PersistFailed:        "Erro ao salvar o carrinho",
	},
}

type Catalog struct {
	tag      language.Tag
	currency currency.Unit
	printer  *message.Printer
}

// NewCatalog picks the closest supported language for locale (a BCP 47 tag or
// an Accept-Language value). Unknown or empty locales fall back to English.
func NewCatalog(locale string) *Catalog {
	_, index := language.MatchStrings(matcher, locale)
	tag := supported[index]

	unit := currency.USD
	if tag == language.BrazilianPortuguese {
		unit = currency.BRL
	}

	return &Catalog{
		tag:      tag,
		currency: unit,
		printer:  message.NewPrinter(tag),
	}
}

func (c *Catalog) Language() language.Tag {
	return c.tag
}

func (c *Catalog) Get(key Key) string {
	return translations[c.tag][key]
}

// FormatPrice renders amount in the catalog's currency, e.g. "R$ 179,90".
func (c *Catalog) FormatPrice(amount domain.Amount) string {
	symbol := c.printer.Sprint(currency.Symbol(c.currency))
	return c.printer.Sprintf("%s %.2f", symbol, amount.ToDecimal())
}
