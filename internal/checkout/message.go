// Package checkout turns the cart into a pre-filled WhatsApp order message.
// Contact-to-order flow: the link is handed to the buyer, the cart itself
// is never touched.
package checkout

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/wisnubjoey/crafthaven/internal/domain"
)

// ErrNoPhoneNumber is returned when no destination number is configured.
// Without it the deep link would be malformed, so the builder refuses.
var ErrNoPhoneNumber = errors.New("checkout: whatsapp phone number not configured")

// Links is the shareable checkout output: the plain message plus the
// mobile and web WhatsApp deep links carrying it.
type Links struct {
	Message   string `json:"message"`
	MobileURL string `json:"mobile_url"`
	WebURL    string `json:"web_url"`
}

// Builder formats carts into order messages. Prices are rendered in
// Indonesian Rupiah with id-ID grouping; this is a business-locale choice,
// not an i18n feature.
type Builder struct {
	phone   string
	printer *message.Printer
}

func NewBuilder(phone string) *Builder {
	return &Builder{
		phone:   phone,
		printer: message.NewPrinter(language.Indonesian),
	}
}

// FormatPrice renders a price with dot thousands separators and no
// decimal places, e.g. 10000 -> "10.000".
func (b *Builder) FormatPrice(price float64) string {
	return b.printer.Sprintf("%d", int64(math.Round(price)))
}

// Message renders the order summary, one numbered block per line item in
// insertion order, followed by the grand total.
func (b *Builder) Message(cart domain.Cart) string {
	var sb strings.Builder
	sb.WriteString("Halo, saya ingin memesan:\n\n")

	for i, item := range cart {
		fmt.Fprintf(&sb, "%d. *%s*\n", i+1, item.Name)
		fmt.Fprintf(&sb, "• Kategori: %s\n", item.CategoryName)
		fmt.Fprintf(&sb, "• Jumlah: %d\n", item.Quantity)
		fmt.Fprintf(&sb, "• Harga: Rp %s\n", b.FormatPrice(item.UnitPrice))
		fmt.Fprintf(&sb, "• Subtotal: Rp %s\n\n", b.FormatPrice(item.Subtotal()))
	}

	fmt.Fprintf(&sb, "*Total: Rp %s*\n\n", b.FormatPrice(cart.Total()))
	sb.WriteString("-------------------\n")

	return sb.String()
}

// Links builds the wa.me and web-client deep links for the cart's order
// message.
func (b *Builder) Links(cart domain.Cart) (Links, error) {
	if b.phone == "" {
		return Links{}, ErrNoPhoneNumber
	}

	msg := b.Message(cart)
	encoded := encodeText(msg)

	return Links{
		Message:   msg,
		MobileURL: fmt.Sprintf("https://wa.me/%s?text=%s", b.phone, encoded),
		WebURL:    fmt.Sprintf("https://web.whatsapp.com/send?phone=%s&text=%s", b.phone, encoded),
	}, nil
}

// encodeText percent-encodes the message body. WhatsApp expects %20 for
// spaces, not the + that query escaping produces.
func encodeText(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
