package display

import (
	"image"

	"go.uber.org/multierr"
)

// Display receives every frame the editor produces.
type Display interface {
	Render(img image.Image) error
	Close() error
}

// Multi fans frames out to every display in order.
func Multi(ds ...Display) Display {
	return multi(ds)
}

type multi []Display

func (m multi) Render(img image.Image) error {
	for _, d := range m {
		if err := d.Render(img); err != nil {
			return err
		}
	}
	return nil
}

func (m multi) Close() error {
	var err error
	for _, d := range m {
		err = multierr.Append(err, d.Close())
	}
	return err
}
