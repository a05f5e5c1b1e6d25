package timezones

import (
	"fmt"
	"sort"

	"github.com/goliatone/go-settingsform/pkg/fieldtype"
	"github.com/goliatone/go-settingsform/pkg/form"
)

// Option customises a Decorator.
type Option func(*Decorator)

// WithZones replaces the embedded zone list. Zones are offered sorted.
func WithZones(zones []string) Option {
	return func(d *Decorator) {
		d.zones = append([]string(nil), zones...)
	}
}

// WithRegions limits the offered zones to the given regions.
func WithRegions(regions ...string) Option {
	return func(d *Decorator) {
		d.regions = append(d.regions, regions...)
	}
}

// Decorator fills the choices of timezone fields that the schema left open.
// Choice labels are the zone identifiers themselves.
type Decorator struct {
	zones   []string
	regions []string
}

// NewDecorator constructs a Decorator backed by the embedded zone list unless
// WithZones is given.
func NewDecorator(options ...Option) (*Decorator, error) {
	d := &Decorator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(d)
	}
	if d.zones == nil {
		zones, err := DefaultZones()
		if err != nil {
			return nil, err
		}
		d.zones = zones
	}
	d.zones = Filter(d.zones, d.regions...)
	if len(d.zones) == 0 {
		return nil, fmt.Errorf("timezones: no zones match regions %v", d.regions)
	}
	sort.Strings(d.zones)
	return d, nil
}

// Decorate implements form.Decorator.
func (d *Decorator) Decorate(f *form.Form) error {
	if d == nil || f == nil {
		return nil
	}
	for idx, field := range f.Fields {
		if field.Type != fieldtype.Timezone || len(field.Options.Choices) > 0 {
			continue
		}
		choices := make([]form.Choice, len(d.zones))
		for i, zone := range d.zones {
			choices[i] = form.Choice{Value: zone, Label: zone}
		}
		f.Fields[idx].Options.Choices = choices
	}
	return nil
}
