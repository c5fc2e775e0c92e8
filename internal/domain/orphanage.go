package domain

import "encoding/json"

// Orphanage is a public profile managed by admins. Location, payment and link
// fields are stored as semi-structured JSON blobs.
type Orphanage struct {
	ID                      int64
	Name                    string
	Email                   string
	Students                int
	PhoneNo                 string
	Location                json.RawMessage
	Activities              string
	PaypalInfo              json.RawMessage
	SocialMediaLinks        json.RawMessage
	Story                   string
	MoneyUses               string
	PhotosLinks             json.RawMessage
	BankInfo                string
	ActID                   string
	ActType                 string
	Country                 string
	GoodWork                string
	MonthlyDonation         string
	RegistrationCertificate string
	BlogLink                string
}
