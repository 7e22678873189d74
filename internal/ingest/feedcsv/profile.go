package feedcsv

// Profile describes the column layout of one upstream CSV export format.
// The ops console and the older partner portal export the same collection
// with different headers; supporting a new layout is just another Profile.
type Profile struct {
	Name string

	IDCol          string
	DisplayCol     string
	ServiceCol     string
	DurationCol    string
	PriceCol       string
	PaidCol        string
	StatusCol      string
	PartnerIDCol   string
	PartnerNameCol string
	AssignedCol    string
	DateCol        string
}

// requiredCols returns the columns that must all be present for this profile
// to match. The rest are best-effort.
func (p Profile) requiredCols() []string {
	return []string{p.IDCol, p.ServiceCol, p.PriceCol, p.DateCol}
}

// profiles is the ordered list of export formats to try during
// auto-detection. More specific profiles come first.
var profiles = []Profile{
	{
		Name:           "console",
		IDCol:          "Order ID",
		DisplayCol:     "Display ID",
		ServiceCol:     "Service",
		DurationCol:    "Duration",
		PriceCol:       "Price To Admin",
		PaidCol:        "Paid Amount",
		StatusCol:      "Status",
		PartnerIDCol:   "Partner ID",
		PartnerNameCol: "Partner Name",
		AssignedCol:    "Assigned To",
		DateCol:        "Created At",
	},
	{
		Name:           "portal",
		IDCol:          "order_id",
		ServiceCol:     "service_name",
		DurationCol:    "duration",
		PriceCol:       "amount",
		PaidCol:        "paid",
		StatusCol:      "status",
		PartnerIDCol:   "partner",
		PartnerNameCol: "partner_name",
		DateCol:        "created",
	},
}
