package domain

import "time"

// User roles recognised by the service.
const (
	RoleFarmer   = "farmer"
	RoleOfficial = "official"
)

// Session is the authenticated identity bound to the current process, or
// its absence (a nil *Session). At most one session is active at a time.
type Session struct {
	UserID      string
	Phone       string
	DisplayName string
	CreatedAt   time.Time
}

// OtpChallenge is one outstanding phone verification attempt. Requesting a
// new code invalidates the previous challenge's handle.
type OtpChallenge struct {
	Phone     string
	Handle    string
	CreatedAt time.Time
}

// Profile is the durable per-user descriptive record. It is created
// out-of-band; this service only reads it.
type Profile struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

// Gamification is the durable per-user engagement record. Points only
// increase through the point-award path; badge granting happens elsewhere.
type Gamification struct {
	Points int      `json:"points"`
	Badges []string `json:"badges"`
}

// Crop is one row of the crop economics table. Cost and Subsidy are rupees
// per acre, Yield is quintals per acre, Price rupees per quintal.
type Crop struct {
	Name    string  `json:"name"`
	Cost    float64 `json:"cost"`
	Yield   float64 `json:"yield"`
	Price   float64 `json:"price"`
	Subsidy float64 `json:"subsidy"`
	Water   string  `json:"water"`
}

// Scheme describes one government support scheme.
type Scheme struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	ShortDescription string   `json:"short_description"`
	Description      string   `json:"description"`
	Benefits         []string `json:"benefits"`
	Eligibility      []string `json:"eligibility"`
	HowToApply       []string `json:"how_to_apply"`
	Link             string   `json:"link"`
}

// MandiPrice is one observed market price quote.
type MandiPrice struct {
	ID     string  `json:"id"`
	Crop   string  `json:"crop"`
	Price  float64 `json:"price"`
	Market string  `json:"market"`
	Date   string  `json:"date"`
}

// FPO is one farmer producer organisation directory entry.
type FPO struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Contact        string `json:"contact"`
	Location       string `json:"location"`
	Specialization string `json:"specialization"`
}

// Farmer is one roster entry managed by agricultural officials.
type Farmer struct {
	ID        string
	Name      string
	Phone     string
	Location  string
	CreatedAt time.Time
}

// Announcement is one message broadcast by an official to the roster.
type Announcement struct {
	ID        string
	Body      string
	CreatedAt time.Time
}
