package wizard

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DraftFile is the on-disk form of a wizard draft, used by non-interactive
// venue creation.
type DraftFile struct {
	Name        string           `yaml:"name"`
	Description string           `yaml:"description"`
	Address     string           `yaml:"address"`
	Latitude    *float64         `yaml:"latitude"`
	Longitude   *float64         `yaml:"longitude"`
	Price       yaml.Node        `yaml:"price"`
	Capacity    yaml.Node        `yaml:"capacity"`
	Images      []DraftFileImage `yaml:"images"`
}

// DraftFileImage is one image entry of a draft file.
type DraftFileImage struct {
	Path    string `yaml:"path"`
	Primary bool   `yaml:"primary"`
}

// LoadDraftFile reads a draft file. Relative image paths are resolved against
// the file's directory.
func LoadDraftFile(path string) (*DraftFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read draft file: %w", err)
	}

	var f DraftFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse draft file: %w", err)
	}

	dir := filepath.Dir(path)
	for i, img := range f.Images {
		if img.Path != "" && !filepath.IsAbs(img.Path) {
			f.Images[i].Path = filepath.Join(dir, img.Path)
		}
	}
	return &f, nil
}

// scalar returns the raw text of a YAML scalar so that `price: 50000` and
// `price: "50000"` are treated the same.
func scalar(n yaml.Node) string {
	if n.Kind != yaml.ScalarNode {
		return ""
	}
	return n.Value
}

// Apply feeds the file into c through the controller's own mutators.
func (f *DraftFile) Apply(c *Controller) error {
	fields := []struct {
		field Field
		value string
	}{
		{FieldName, f.Name},
		{FieldDescription, f.Description},
		{FieldAddress, f.Address},
		{FieldPrice, scalar(f.Price)},
		{FieldCapacity, scalar(f.Capacity)},
	}
	for _, fv := range fields {
		if err := c.UpdateField(fv.field, fv.value); err != nil {
			return err
		}
	}

	if f.Latitude != nil && f.Longitude != nil {
		if err := c.SetLocation(*f.Latitude, *f.Longitude); err != nil {
			return err
		}
	}

	primary := -1
	for i, img := range f.Images {
		if err := c.AddImage(img.Path); err != nil {
			return fmt.Errorf("image %d: %w", i+1, err)
		}
		if img.Primary && primary < 0 {
			primary = i
		}
	}
	if primary >= 0 {
		return c.SetPrimaryImage(primary)
	}
	return nil
}

// RunToSummary advances c until it reaches the summary step without
// submitting. It stops at the first step that fails validation.
func RunToSummary(c *Controller) error {
	for c.Step() != StepSummary {
		if err := c.advanceNoSubmit(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Controller) advanceNoSubmit() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.writableLocked(); err != nil {
		return err
	}
	if err := validateStep(c.step, c.draft); err != nil {
		return err
	}
	next, ok := c.step.Next()
	if !ok {
		return fmt.Errorf("cannot advance past %s without submitting", c.step)
	}
	c.step = next
	return nil
}

// Summary renders the draft as label/value pairs for the summary screen.
func (d *Draft) Summary() [][2]string {
	loc := "not set"
	if d.Location != nil {
		loc = strconv.FormatFloat(d.Location.Latitude, 'f', 6, 64) + ", " + strconv.FormatFloat(d.Location.Longitude, 'f', 6, 64)
	}
	primary := "none"
	if i := d.PrimaryIndex(); i >= 0 {
		primary = filepath.Base(d.Images[i].Ref)
	}
	return [][2]string{
		{"Name", d.Name},
		{"Type", d.Type},
		{"Description", d.Description},
		{"Address", d.Address},
		{"Coordinates", loc},
		{"Price per hour", d.Price},
		{"Capacity", d.Capacity},
		{"Images", strconv.Itoa(len(d.Images))},
		{"Primary image", primary},
	}
}
