package wizard

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/AlexG0311/sportzone/pkg/sportzone"
)

// Field names a text field of the draft.
type Field string

const (
	FieldName        Field = "name"
	FieldDescription Field = "description"
	FieldAddress     Field = "address"
	FieldPrice       Field = "price"
	FieldCapacity    Field = "capacity"
)

// ParseField maps a user-supplied key to a Field.
func ParseField(key string) (Field, error) {
	switch f := Field(strings.ToLower(strings.TrimSpace(key))); f {
	case FieldName, FieldDescription, FieldAddress, FieldPrice, FieldCapacity:
		return f, nil
	default:
		return "", fmt.Errorf("unknown field: %s (must be name, description, address, price or capacity)", key)
	}
}

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// DraftImage is a local image waiting to be uploaded.
type DraftImage struct {
	Ref     string // local file path
	Primary bool
}

// Draft is the client-only venue record accumulated across wizard steps.
// Price and Capacity keep the raw text the user typed; they are parsed during
// validation and again when the venue input is built.
type Draft struct {
	Name        string
	Description string
	Address     string
	Location    *Coordinates
	Price       string
	Capacity    string
	Images      []DraftImage
	Type        string
	StatusID    int
	OwnerID     int
}

// NewDraft returns an empty draft with the fixed initial markers.
func NewDraft() *Draft {
	return &Draft{
		Type:     sportzone.VenueTypePublic,
		StatusID: sportzone.VenueStatusAvailable,
	}
}

func (d *Draft) clone() *Draft {
	cp := *d
	if d.Location != nil {
		loc := *d.Location
		cp.Location = &loc
	}
	cp.Images = append([]DraftImage(nil), d.Images...)
	return &cp
}

func (d *Draft) set(f Field, value string) error {
	switch f {
	case FieldName:
		d.Name = value
	case FieldDescription:
		d.Description = value
	case FieldAddress:
		d.Address = value
	case FieldPrice:
		d.Price = value
	case FieldCapacity:
		d.Capacity = value
	default:
		return fmt.Errorf("unknown field: %s", f)
	}
	return nil
}

// addImage appends an image; the first image becomes primary.
func (d *Draft) addImage(ref string) error {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return fmt.Errorf("image reference cannot be empty")
	}
	d.Images = append(d.Images, DraftImage{Ref: ref, Primary: len(d.Images) == 0})
	return nil
}

// setPrimary marks image i as primary and clears every other flag.
func (d *Draft) setPrimary(i int) error {
	if i < 0 || i >= len(d.Images) {
		return fmt.Errorf("image index %d out of range (have %d)", i, len(d.Images))
	}
	for j := range d.Images {
		d.Images[j].Primary = j == i
	}
	return nil
}

// removeImage drops image i. Removing the primary promotes the first remaining image.
func (d *Draft) removeImage(i int) error {
	if i < 0 || i >= len(d.Images) {
		return fmt.Errorf("image index %d out of range (have %d)", i, len(d.Images))
	}
	wasPrimary := d.Images[i].Primary
	d.Images = append(d.Images[:i], d.Images[i+1:]...)
	if wasPrimary && len(d.Images) > 0 {
		d.Images[0].Primary = true
	}
	return nil
}

// normalizePrimary leaves exactly one primary image when any exist,
// keeping the first flagged one.
func (d *Draft) normalizePrimary() {
	if len(d.Images) == 0 {
		return
	}
	primary := -1
	for i, img := range d.Images {
		if img.Primary {
			primary = i
			break
		}
	}
	if primary < 0 {
		primary = 0
	}
	for i := range d.Images {
		d.Images[i].Primary = i == primary
	}
}

// PrimaryIndex returns the index of the primary image, or -1.
func (d *Draft) PrimaryIndex() int {
	for i, img := range d.Images {
		if img.Primary {
			return i
		}
	}
	return -1
}

// ParsePrice parses the price text. It must be a finite number.
func ParsePrice(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid price: %q", s)
	}
	return f, nil
}

// ParseCapacity parses the capacity text as an integer.
func ParseCapacity(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid capacity: %q", s)
	}
	return n, nil
}

// Input converts a validated draft into the create-venue payload.
func (d *Draft) Input() (sportzone.VenueInput, error) {
	if d.Location == nil {
		return sportzone.VenueInput{}, fmt.Errorf("draft has no location")
	}
	price, err := ParsePrice(d.Price)
	if err != nil {
		return sportzone.VenueInput{}, err
	}
	capacity, err := ParseCapacity(d.Capacity)
	if err != nil {
		return sportzone.VenueInput{}, err
	}

	in := sportzone.VenueInput{
		Name:        strings.TrimSpace(d.Name),
		Type:        d.Type,
		Description: strings.TrimSpace(d.Description),
		Address:     strings.TrimSpace(d.Address),
		Latitude:    d.Location.Latitude,
		Longitude:   d.Location.Longitude,
		Price:       price,
		Capacity:    capacity,
		StatusID:    d.StatusID,
		OwnerID:     d.OwnerID,
	}
	if err := in.Validate(); err != nil {
		return sportzone.VenueInput{}, err
	}
	return in, nil
}
