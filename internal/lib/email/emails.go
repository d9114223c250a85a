package email

import "strconv"

// DemandApprovedData fills the demand_approved template.
type DemandApprovedData struct {
	MemberName string
	OfferName  string
	OfferID    int64
	DemandID   int64
}

func (d DemandApprovedData) templateData() map[string]string {
	return map[string]string{
		"MemberName": d.MemberName,
		"OfferName":  d.OfferName,
		"OfferID":    strconv.FormatInt(d.OfferID, 10),
		"DemandID":   strconv.FormatInt(d.DemandID, 10),
	}
}

// SendDemandApprovedEmail tells a member their demand won the offer.
func (c *Client) SendDemandApprovedEmail(to string, data DemandApprovedData) error {
	return c.SendEmail(
		to,
		"Your demand for "+data.OfferName+" was approved",
		TemplateDemandApproved,
		data.templateData(),
	)
}
