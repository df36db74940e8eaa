package rfm

import (
	"strconv"
	"strings"

	"github.com/mvaldes-ar/rfm-insights/constants"
	"github.com/mvaldes-ar/rfm-insights/internal/entity"
	"github.com/mvaldes-ar/rfm-insights/internal/utils"
)

// ExtractCustomerFields normalizes raw back-office customer records
// into the canonical attribute set. Missing optional fields degrade to
// empty strings; no error is raised for them. The input is never
// mutated.
func ExtractCustomerFields(raw []entity.RawCustomer) []entity.Customer {
	out := make([]entity.Customer, 0, len(raw))
	for _, rc := range raw {
		name := strings.TrimSpace(strings.TrimSpace(rc.Firstname) + " " + strings.TrimSpace(rc.Lastname))
		if name == "" {
			name = constants.NoName
		}

		var phone, postcode string
		if len(rc.Addresses) > 0 {
			phone = rc.Addresses[0].Telephone
			postcode = rc.Addresses[0].Postcode
		}

		local := constants.No
		if strings.Contains(postcode, constants.LocalRegionPrefix) {
			local = constants.Yes
		}

		out = append(out, entity.Customer{
			ID:            strconv.FormatInt(rc.ID, 10),
			Email:         utils.CleanEmail(rc.Email),
			Name:          name,
			Phone:         phone,
			PostalCode:    postcode,
			IsLocalRegion: local,
			TaxVATNumber:  rc.TaxVAT,
			VATNumber:     rc.TaxVAT,
			CreatedAt:     utils.ParseDate(rc.CreatedAt),
		})
	}
	return out
}
