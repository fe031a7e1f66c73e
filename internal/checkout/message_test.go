package checkout

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wisnubjoey/crafthaven/internal/domain"
)

func TestFormatPrice(t *testing.T) {
	b := NewBuilder("628111")

	assert.Equal(t, "0", b.FormatPrice(0))
	assert.Equal(t, "500", b.FormatPrice(500))
	assert.Equal(t, "10.000", b.FormatPrice(10000))
	assert.Equal(t, "1.250.000", b.FormatPrice(1250000))
	// no decimal places, rounded
	assert.Equal(t, "10.000", b.FormatPrice(9999.6))
}

func TestMessageContents(t *testing.T) {
	b := NewBuilder("628111")
	cart := domain.Cart{
		{ID: "1", ProductID: 1, Name: "A", CategoryName: "Kalung", UnitPrice: 10000, Quantity: 2},
	}

	msg := b.Message(cart)

	assert.Equal(t, 1, strings.Count(msg, "*A*"))
	assert.Contains(t, msg, "1. *A*")
	assert.Contains(t, msg, "• Kategori: Kalung")
	assert.Contains(t, msg, "• Jumlah: 2")
	assert.Contains(t, msg, "• Harga: Rp 10.000")
	assert.Contains(t, msg, "• Subtotal: Rp 20.000")
	assert.Contains(t, msg, "*Total: Rp 20.000*")
	assert.True(t, strings.HasPrefix(msg, "Halo, saya ingin memesan:\n\n"))
}

func TestMessageIndexesInInsertionOrder(t *testing.T) {
	b := NewBuilder("628111")
	cart := domain.Cart{
		{ID: "1", Name: "Gelang Etnik", CategoryName: "Gelang", UnitPrice: 45000, Quantity: 1},
		{ID: "2", Name: "Kalung Manik", CategoryName: "Kalung", UnitPrice: 80000, Quantity: 3},
	}

	msg := b.Message(cart)

	first := strings.Index(msg, "1. *Gelang Etnik*")
	second := strings.Index(msg, "2. *Kalung Manik*")
	require.GreaterOrEqual(t, first, 0)
	require.Greater(t, second, first)
	assert.Contains(t, msg, "*Total: Rp 285.000*")
}

func TestLinks(t *testing.T) {
	b := NewBuilder("6281234567890")
	cart := domain.Cart{
		{ID: "1", Name: "A", CategoryName: "Kalung", UnitPrice: 10000, Quantity: 2},
	}

	links, err := b.Links(cart)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(links.MobileURL, "https://wa.me/6281234567890?text="))
	assert.True(t, strings.HasPrefix(links.WebURL, "https://web.whatsapp.com/send?phone=6281234567890&text="))

	// the encoded text must round-trip through a URL parser
	parsed, err := url.Parse(links.MobileURL)
	require.NoError(t, err)
	assert.Equal(t, links.Message, parsed.Query().Get("text"))

	// %20 for spaces, never +
	assert.NotContains(t, links.MobileURL, "+")
	assert.Contains(t, links.MobileURL, "%20")
}

func TestLinksWithoutPhone(t *testing.T) {
	b := NewBuilder("")

	_, err := b.Links(domain.Cart{})
	assert.ErrorIs(t, err, ErrNoPhoneNumber)
}

func TestMessageEmptyCart(t *testing.T) {
	b := NewBuilder("628111")

	msg := b.Message(domain.Cart{})
	assert.Contains(t, msg, "*Total: Rp 0*")
	assert.NotContains(t, msg, "1.")
}
