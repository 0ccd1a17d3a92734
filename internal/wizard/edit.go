package wizard

import (
	"fmt"
	"strconv"

	"github.com/AlexG0311/sportzone/pkg/sportzone"
)

// DraftFromVenue seeds a draft with the scalar fields of an existing venue so
// it can be edited with the same field rules as a new one. Images are not
// copied; the venue keeps its image records.
func DraftFromVenue(v *sportzone.Venue) *Draft {
	d := NewDraft()
	d.Name = v.Name
	d.Description = v.Description
	d.Address = v.Address
	d.Location = &Coordinates{Latitude: v.Latitude.Float64(), Longitude: v.Longitude.Float64()}
	d.Price = strconv.FormatFloat(v.Price.Float64(), 'f', -1, 64)
	d.Capacity = strconv.Itoa(v.Capacity)
	if v.Type != "" {
		d.Type = v.Type
	}
	if v.StatusID > 0 {
		d.StatusID = v.StatusID
	}
	d.OwnerID = v.OwnerID
	return d
}

// Set updates one text field of a standalone draft.
func (d *Draft) Set(f Field, value string) error {
	return d.set(f, value)
}

// SetLocation replaces the coordinates of a standalone draft.
func (d *Draft) SetLocation(lat, lng float64) error {
	if err := checkCoordinates(lat, lng); err != nil {
		return err
	}
	d.Location = &Coordinates{Latitude: lat, Longitude: lng}
	return nil
}

// ValidateDetails checks every field step except images, for edits of venues
// that already have image records.
func ValidateDetails(d *Draft) error {
	for s := StepName; s < StepImages; s++ {
		if err := validateStep(s, d); err != nil {
			return err
		}
	}
	return nil
}

func checkCoordinates(lat, lng float64) error {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return fmt.Errorf("coordinates out of range: %f, %f", lat, lng)
	}
	return nil
}
