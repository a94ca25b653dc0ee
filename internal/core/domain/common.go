package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// Commission identifies the organizational sub-unit submitting requests and reports.
type Commission string

const (
	CommissionCommunication     Commission = "COMMUNICATION"
	CommissionCulture           Commission = "CULTURE"
	CommissionFinance           Commission = "FINANCE"
	CommissionHealth            Commission = "HEALTH"
	CommissionEducation         Commission = "EDUCATION"
	CommissionExternalRelations Commission = "EXTERNAL_RELATIONS"
	CommissionSocial            Commission = "SOCIAL"
	CommissionTransport         Commission = "TRANSPORT"
	CommissionAdministration    Commission = "ADMINISTRATION"
	CommissionOrganisation      Commission = "ORGANISATION"
)

// Commissions lists every valid commission tag.
var Commissions = []Commission{
	CommissionCommunication,
	CommissionCulture,
	CommissionFinance,
	CommissionHealth,
	CommissionEducation,
	CommissionExternalRelations,
	CommissionSocial,
	CommissionTransport,
	CommissionAdministration,
	CommissionOrganisation,
}

// IsValid reports whether c is one of the known commissions.
func (c Commission) IsValid() bool {
	for _, known := range Commissions {
		if c == known {
			return true
		}
	}
	return false
}
