package types

import "time"

// Owner is an officer, user or admin record.
//
// Officers use OfficerID, Name, Email and PhoneNumber. Users additionally
// carry a postal address and their water meters.
type Owner struct {
	ID          OwnerID   `json:"uid"`
	Role        Role      `json:"role"`
	OfficerID   string    `json:"id,omitempty"`
	Name        string    `json:"name,omitempty"`
	Email       string    `json:"email,omitempty"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	Street      string    `json:"street,omitempty"`
	City        string    `json:"city,omitempty"`
	Province    string    `json:"province,omitempty"`
	Country     string    `json:"country,omitempty"`
	Meters      Meters    `json:"meters,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// OfficerInput is the payload for registering an officer.
type OfficerInput struct {
	OfficerID   string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

// UserInput is the payload for registering a user with a first meter.
type UserInput struct {
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	PhoneNumber string      `json:"phoneNumber"`
	Street      string      `json:"street"`
	City        string      `json:"city"`
	Province    string      `json:"province"`
	Country     string      `json:"country"`
	WaterMeter1 MeterRecord `json:"waterMeter1"`
}

// OfficerEdit is the set of editable officer fields.
type OfficerEdit struct {
	Name        string `json:"name"`
	OfficerID   string `json:"id"`
	PhoneNumber string `json:"phoneNumber"`
}

// UserEdit is the set of editable user profile fields.
type UserEdit struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	Street      string `json:"street"`
	City        string `json:"city"`
	Province    string `json:"province"`
	Country     string `json:"country"`
}
