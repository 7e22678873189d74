package encoding_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/dmarinho/orderdesk/internal/encoding"
)

func readAll(t *testing.T, r io.Reader) string {
	t.Helper()

	out, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(out)
}

func TestNewUTF8Reader_PlainUTF8(t *testing.T) {
	in := "Order ID,Service,Paid\nORD-1,Diwali Greeting — ₹500,500\n"

	r, err := encoding.NewUTF8Reader(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, in, readAll(t, r))
}

func TestNewUTF8Reader_UTF8BOM(t *testing.T) {
	in := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Order ID,Service\n")...)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, "Order ID,Service\n", readAll(t, r))
}

func TestNewUTF8Reader_UTF16LE(t *testing.T) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	in, err := enc.Bytes([]byte("Order ID,Partner\nORD-1,Café Press\n"))
	require.NoError(t, err)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, "Order ID,Partner\nORD-1,Café Press\n", readAll(t, r))
}

func TestNewUTF8Reader_Windows1252(t *testing.T) {
	enc := charmap.Windows1252.NewEncoder()
	in, err := enc.Bytes([]byte("ORD-1;Café Press;Sûr Média Désign Prêt-à-porter spécialisé\n"))
	require.NoError(t, err)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, "ORD-1;Café Press;Sûr Média Désign Prêt-à-porter spécialisé\n", readAll(t, r))
}

func TestNewUTF8Reader_Empty(t *testing.T) {
	r, err := encoding.NewUTF8Reader(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, readAll(t, r))
}
