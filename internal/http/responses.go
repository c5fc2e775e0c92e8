package http

import (
	"encoding/json"
	"fmt"
	"time"

	"orphanage-api/internal/domain"
)

type selfLinks struct {
	Self string `json:"self"`
}

type UserResponse struct {
	ID       int64     `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	IsAdmin  bool      `json:"is_admin"`
	PhoneNo  string    `json:"phone_no"`
	LastSeen string    `json:"last_seen"`
	Links    selfLinks `json:"_links"`
}

type userWithTokenResponse struct {
	UserResponse
	Token string `json:"token"`
}

func userToResponse(user domain.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		IsAdmin:  user.IsAdmin,
		PhoneNo:  user.PhoneNo,
		LastSeen: user.LastSeen.UTC().Format(time.RFC3339),
		Links:    selfLinks{Self: fmt.Sprintf("/api/user/%d", user.ID)},
	}
}

type OrphanageResponse struct {
	ID                      int64           `json:"id"`
	Name                    string          `json:"name"`
	Email                   string          `json:"email"`
	Students                int             `json:"students"`
	PhoneNo                 string          `json:"phone_no"`
	Location                json.RawMessage `json:"location"`
	Activities              string          `json:"activities"`
	PaypalInfo              json.RawMessage `json:"paypal_info"`
	SocialMediaLinks        json.RawMessage `json:"social_media_links"`
	Story                   string          `json:"story"`
	MoneyUses               string          `json:"money_uses"`
	PhotosLinks             json.RawMessage `json:"photos_links"`
	BankInfo                string          `json:"bank_info"`
	ActID                   string          `json:"actId"`
	ActType                 string          `json:"acttype"`
	Country                 string          `json:"country"`
	GoodWork                string          `json:"good_work"`
	MonthlyDonation         string          `json:"monthly_donation"`
	RegistrationCertificate string          `json:"registration_certificate"`
	BlogLink                string          `json:"blog_link"`
	Links                   selfLinks       `json:"_links"`
}

func orphanageToResponse(orph domain.Orphanage) OrphanageResponse {
	return OrphanageResponse{
		ID:                      orph.ID,
		Name:                    orph.Name,
		Email:                   orph.Email,
		Students:                orph.Students,
		PhoneNo:                 orph.PhoneNo,
		Location:                orph.Location,
		Activities:              orph.Activities,
		PaypalInfo:              orph.PaypalInfo,
		SocialMediaLinks:        orph.SocialMediaLinks,
		Story:                   orph.Story,
		MoneyUses:               orph.MoneyUses,
		PhotosLinks:             orph.PhotosLinks,
		BankInfo:                orph.BankInfo,
		ActID:                   orph.ActID,
		ActType:                 orph.ActType,
		Country:                 orph.Country,
		GoodWork:                orph.GoodWork,
		MonthlyDonation:         orph.MonthlyDonation,
		RegistrationCertificate: orph.RegistrationCertificate,
		BlogLink:                orph.BlogLink,
		Links:                   selfLinks{Self: fmt.Sprintf("/api/orphanage/%d", orph.ID)},
	}
}

type MessageResponse struct {
	ID               int64  `json:"id"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Email            string `json:"email"`
	PhoneNo          string `json:"phone_no"`
	Content          string `json:"content"`
	CreationDatetime string `json:"creation_datetime"`
}

func messageToResponse(msg domain.Message) MessageResponse {
	return MessageResponse{
		ID:               msg.ID,
		FirstName:        msg.FirstName,
		LastName:         msg.LastName,
		Email:            msg.Email,
		PhoneNo:          msg.PhoneNo,
		Content:          msg.Content,
		CreationDatetime: msg.CreationDatetime.UTC().Format(time.RFC3339),
	}
}

type DonationResponse struct {
	DonationTime       string  `json:"donation_time"`
	Amount             float64 `json:"amount"`
	Donor              string  `json:"donor"`
	RecipientOrphanage string  `json:"recipient_orphanage"`
}

func donationToResponse(donation domain.Donation) DonationResponse {
	return DonationResponse{
		DonationTime:       donation.DonationTime.UTC().Format(time.RFC3339),
		Amount:             donation.Amount(),
		Donor:              donation.DonorUsername,
		RecipientOrphanage: donation.RecipientName,
	}
}
