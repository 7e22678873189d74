package feedcsv_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/dmarinho/orderdesk/internal/ingest/feedcsv"
)

func TestParser_Console(t *testing.T) {
	csv := `Order export - generated 2026-08-19

Order ID,Display ID,Service,Duration,Price To Admin,Paid Amount,Status,Partner ID,Partner Name,Assigned To,Created At
doc-101,ORD-101,E-Greeting Yearly Pack,1 Year,"₹5,000","₹2,000",in progress,p1,Sharma Prints,Anita,2026-08-10 09:30:00
doc-102,ORD-102,Logo Correction,,500,500,completed,,,Ravi,2026-08-11 14:00:00
`

	p := feedcsv.New()
	orders, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, orders, 2)

	o := orders[0]
	assert.Equal(t, "doc-101", o.SourceID)
	assert.Equal(t, "ORD-101", o.DisplayID)
	assert.Equal(t, "E-Greeting Yearly Pack", o.ServiceName)
	assert.Equal(t, "1 Year", o.Duration)
	assert.Equal(t, int64(500000), o.AdminPrice)
	assert.Equal(t, int64(200000), o.PaidAmount)
	assert.Equal(t, "in progress", o.RawStatus)
	assert.Equal(t, "p1", o.PartnerID)
	assert.Equal(t, "Sharma Prints", o.PartnerName)
	assert.Equal(t, "Anita", o.AssignedTo)
	assert.Equal(t, time.Date(2026, 8, 10, 9, 30, 0, 0, time.UTC), o.CreatedAt)

	o = orders[1]
	assert.Equal(t, "doc-102", o.SourceID)
	assert.Equal(t, int64(50000), o.AdminPrice)
	assert.Equal(t, int64(50000), o.PaidAmount)
	assert.Empty(t, o.PartnerID)
}

func TestParser_Portal(t *testing.T) {
	csv := `order_id,service_name,duration,amount,paid,status,partner,partner_name,created
doc-201,Agency Setup,,25000,10000,PENDING,p2,Desai Media,15-08-2026
doc-202,Diwali Greeting,Monthly,1200.50,0,,p2,Desai Media,16-08-2026
`

	p := feedcsv.New()
	orders, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, orders, 2)

	assert.Equal(t, int64(2500000), orders[0].AdminPrice)
	assert.Equal(t, int64(1000000), orders[0].PaidAmount)
	assert.Equal(t, time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC), orders[0].CreatedAt)

	assert.Equal(t, int64(120050), orders[1].AdminPrice)
	assert.Empty(t, orders[1].RawStatus)
}

func TestParser_Windows1252(t *testing.T) {
	enc := charmap.Windows1252.NewEncoder()
	raw, err := enc.Bytes([]byte(`order_id,service_name,duration,amount,paid,status,partner,partner_name,created
doc-301,Présentation Déçà Déjà Vidéo,,800,0,pending,p3,Café Désign Numérique,17-08-2026
`))
	require.NoError(t, err)

	p := feedcsv.New()
	orders, err := p.Parse(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Présentation Déçà Déjà Vidéo", orders[0].ServiceName)
	assert.Equal(t, "Café Désign Numérique", orders[0].PartnerName)
}

func TestParser_UnknownFormat(t *testing.T) {
	p := feedcsv.New()
	_, err := p.Parse(strings.NewReader("a,b,c\n1,2,3\n"))
	require.Error(t, err)
}

func TestParser_MissingService(t *testing.T) {
	csv := `order_id,service_name,duration,amount,paid,status,partner,partner_name,created
doc-401,,,100,0,pending,,,15-08-2026
`

	p := feedcsv.New()
	_, err := p.Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing service name")
}

func TestParser_SkipsBlankRows(t *testing.T) {
	csv := `order_id,service_name,duration,amount,paid,status,partner,partner_name,created
doc-501,Logo Design,,100,0,pending,,,15-08-2026
,,,,,,,,
`

	p := feedcsv.New()
	orders, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}
