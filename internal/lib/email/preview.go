package email

// PreviewData holds sample values for rendering each template locally.
var PreviewData = map[Template]map[string]string{
	TemplateDemandApproved: DemandApprovedData{
		MemberName: "Camille",
		OfferName:  "Wooden Table",
		OfferID:    12,
		DemandID:   34,
	}.templateData(),
}
