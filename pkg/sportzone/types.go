package sportzone

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Fixed markers the backend expects on newly created records.
const (
	// VenueTypePublic is the type assigned to venues created from the client
	VenueTypePublic = "Público"

	// VenueStatusAvailable is the initial status id of a newly created venue
	VenueStatusAvailable = 1

	// ReservationStatusPending is the status id of a newly requested reservation
	ReservationStatusPending = 6

	// RoleUser is the role id assigned to self-registered accounts
	RoleUser = 2

	// PrimaryImageLabel describes the featured image of a venue
	PrimaryImageLabel = "Imagen principal"

	// AdditionalImageLabel describes every non-featured image of a venue
	AdditionalImageLabel = "Imagen adicional"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
)

// Decimal is a numeric column that the backend may serialize as a JSON number,
// a numeric string, or null. Null and empty strings decode to zero.
type Decimal float64

// UnmarshalJSON accepts numbers, numeric strings and null.
func (d *Decimal) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*d = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*d = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid decimal %q: %w", s, err)
		}
		*d = Decimal(f)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("invalid decimal %s: %w", string(data), err)
	}
	*d = Decimal(f)
	return nil
}

// Float64 returns the value as a float64.
func (d Decimal) Float64() float64 { return float64(d) }

// User is an account as returned by the backend.
type User struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Name  string `json:"nombre,omitempty"`
	Phone string `json:"telefono,omitempty"`
	Role  int    `json:"rolId,omitempty"`
}

// DisplayName returns the user's name, falling back to the email address.
func (u *User) DisplayName() string {
	if strings.TrimSpace(u.Name) != "" {
		return u.Name
	}
	return u.Email
}

// Venue is a committed sports venue ("escenario").
type Venue struct {
	ID          int          `json:"id"`
	Name        string       `json:"nombre"`
	Type        string       `json:"tipo,omitempty"`
	Description string       `json:"descripcion,omitempty"`
	Address     string       `json:"direccion,omitempty"`
	Latitude    Decimal      `json:"latitud"`
	Longitude   Decimal      `json:"longitud"`
	Price       Decimal      `json:"precio"`
	Capacity    int          `json:"capacidad"`
	StatusID    int          `json:"estadoId,omitempty"`
	OwnerID     int          `json:"encargadoId,omitempty"`
	ImageURL    string       `json:"imagenUrl,omitempty"`
	Images      []VenueImage `json:"imagenes,omitempty"`
}

// CoverURL returns the URL of the image with the lowest display order, or
// the legacy single image URL when the venue has no image records.
func (v *Venue) CoverURL() string {
	if len(v.Images) == 0 {
		return v.ImageURL
	}
	best := v.Images[0]
	for _, img := range v.Images[1:] {
		if img.Order < best.Order {
			best = img
		}
	}
	return best.URL
}

// VenueImage is an image record attached to a venue.
type VenueImage struct {
	ID          int    `json:"id,omitempty"`
	VenueID     int    `json:"escenarioId,omitempty"`
	URL         string `json:"url"`
	Description string `json:"descripcion,omitempty"`
	Order       int    `json:"orden"`
}

// VenueInput is the scalar field set sent on venue creation and update.
type VenueInput struct {
	Name        string  `json:"nombre"`
	Type        string  `json:"tipo"`
	Description string  `json:"descripcion"`
	Address     string  `json:"direccion"`
	Latitude    float64 `json:"latitud"`
	Longitude   float64 `json:"longitud"`
	Price       float64 `json:"precio"`
	Capacity    int     `json:"capacidad"`
	StatusID    int     `json:"estadoId"`
	OwnerID     int     `json:"encargadoId"`
	ImageURL    string  `json:"imagenUrl,omitempty"`
}

// Validate checks if the VenueInput has valid field values.
func (v *VenueInput) Validate() error {
	if strings.TrimSpace(v.Name) == "" {
		return fmt.Errorf("venue name cannot be empty")
	}
	if strings.TrimSpace(v.Description) == "" {
		return fmt.Errorf("venue description cannot be empty")
	}
	if strings.TrimSpace(v.Address) == "" {
		return fmt.Errorf("venue address cannot be empty")
	}
	if v.Price <= 0 {
		return fmt.Errorf("invalid price: must be > 0, got %v", v.Price)
	}
	if v.Capacity <= 0 {
		return fmt.Errorf("invalid capacity: must be > 0, got %d", v.Capacity)
	}
	if v.OwnerID <= 0 {
		return fmt.Errorf("venue owner id is required")
	}
	return nil
}

// VenueImageInput associates an uploaded media URL with a venue.
type VenueImageInput struct {
	VenueID     int    `json:"escenarioId"`
	URL         string `json:"url"`
	Description string `json:"descripcion"`
	Order       int    `json:"orden"`
}

// Validate checks if the VenueImageInput has valid field values.
func (i *VenueImageInput) Validate() error {
	if i.VenueID <= 0 {
		return fmt.Errorf("image venue id is required")
	}
	if strings.TrimSpace(i.URL) == "" {
		return fmt.Errorf("image url cannot be empty")
	}
	if i.Order < 0 {
		return fmt.Errorf("invalid image order: must be >= 0, got %d", i.Order)
	}
	return nil
}

// Credentials are submitted on login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"contrasena"`
}

// Validate checks that both fields are present.
func (c *Credentials) Validate() error {
	if strings.TrimSpace(c.Email) == "" || strings.TrimSpace(c.Password) == "" {
		return fmt.Errorf("email and password are required")
	}
	return nil
}

// Registration is the account creation payload. Confirm is checked client-side
// and never sent.
type Registration struct {
	Name     string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"contrasena"`
	Confirm  string `json:"-"`
	Phone    string `json:"telefono"`
	RoleID   int    `json:"rolId"`
}

// Normalize trims whitespace, lowercases the email and applies the default role.
func (r *Registration) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)
	if r.RoleID == 0 {
		r.RoleID = RoleUser
	}
}

// Validate checks the registration form rules.
func (r *Registration) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name is required")
	}
	email := strings.TrimSpace(r.Email)
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("invalid email address: %s", email)
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	if len(r.Password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	if r.Password != r.Confirm {
		return fmt.Errorf("passwords do not match")
	}
	phone := strings.TrimSpace(r.Phone)
	if phone == "" {
		return fmt.Errorf("phone is required")
	}
	if !phonePattern.MatchString(phone) {
		return fmt.Errorf("invalid phone: must be exactly 10 digits")
	}
	return nil
}

// StatusRef is a nested status summary.
type StatusRef struct {
	ID   int    `json:"id"`
	Name string `json:"nombre"`
}

// VenueSummary is the nested venue shape embedded in reservations and reports.
type VenueSummary struct {
	ID      int          `json:"id"`
	Name    string       `json:"nombre"`
	Type    string       `json:"tipo,omitempty"`
	Address string       `json:"direccion,omitempty"`
	Price   Decimal      `json:"precio,omitempty"`
	Images  []VenueImage `json:"imagenes,omitempty"`
}

// UserSummary is the nested user shape embedded in reservations and reports.
type UserSummary struct {
	ID    int    `json:"id"`
	Name  string `json:"nombre"`
	Email string `json:"email,omitempty"`
}

// Reservation is a committed booking of a venue time slot.
type Reservation struct {
	ID       int           `json:"id"`
	UserID   int           `json:"usuarioId"`
	VenueID  int           `json:"escenarioId"`
	Date     string        `json:"fecha"`
	Start    string        `json:"horaInicio"`
	End      string        `json:"horaFin"`
	StatusID int           `json:"estadoId"`
	Status   *StatusRef    `json:"estado,omitempty"`
	Venue    *VenueSummary `json:"escenario,omitempty"`
	User     *UserSummary  `json:"usuario,omitempty"`
}

// ReservationInput is the reservation request payload. Date is YYYY-MM-DD,
// Start and End are HH:MM.
type ReservationInput struct {
	Date     string `json:"fecha"`
	Start    string `json:"horaInicio"`
	End      string `json:"horaFin"`
	VenueID  int    `json:"escenarioId"`
	UserID   int    `json:"usuarioId"`
	StatusID int    `json:"estadoId"`
}

// Validate checks if the ReservationInput has valid field values.
func (r *ReservationInput) Validate() error {
	if r.Date == "" || r.Start == "" || r.End == "" {
		return fmt.Errorf("date, start time and end time are required")
	}
	if r.VenueID <= 0 {
		return fmt.Errorf("reservation venue id is required")
	}
	if r.UserID <= 0 {
		return fmt.Errorf("reservation user id is required")
	}
	return nil
}

// ReservationResult is the reservation endpoint's response envelope: a success
// flag plus either the created record or an error message.
type ReservationResult struct {
	Success bool         `json:"success"`
	Data    *Reservation `json:"data,omitempty"`
	Message string       `json:"message,omitempty"`
}

// Report is a committed damage report.
type Report struct {
	ID          int           `json:"id"`
	Description string        `json:"descripcion"`
	ImageURL    string        `json:"imagenUrl,omitempty"`
	ReportedAt  string        `json:"fechaReporte,omitempty"`
	User        *UserSummary  `json:"usuario,omitempty"`
	Venue       *VenueSummary `json:"escenario,omitempty"`
}

// ReportInput is the damage report payload.
type ReportInput struct {
	UserID      int    `json:"usuarioId"`
	VenueID     int    `json:"escenarioId"`
	Description string `json:"descripcion"`
	ImageURL    string `json:"imagenUrl"`
}

// Validate checks if the ReportInput has valid field values.
func (r *ReportInput) Validate() error {
	if r.UserID <= 0 {
		return fmt.Errorf("report user id is required")
	}
	if r.VenueID <= 0 {
		return fmt.Errorf("report venue id is required")
	}
	if strings.TrimSpace(r.Description) == "" {
		return fmt.Errorf("report description cannot be empty")
	}
	return nil
}
