package asset

import (
	"io"

	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
)

func loadFont(r io.Reader) (interface{}, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return truetype.Parse(data)
}

// Font returns the named TrueType font.
//
func (m *Manager) Font(name string) (*truetype.Font, error) {
	a := Font(name)
	data, err := m.get(a)
	if err != nil {
		return nil, err
	}
	f, ok := data.(*truetype.Font)
	if !ok {
		return nil, errors.Errorf("%s is not a font", a)
	}
	return f, nil
}
