package asset

import (
	"io"

	"github.com/pkg/errors"
)

type file []byte

func loadFile(r io.Reader) (interface{}, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return file(data), nil
}

// File returns the content of the named raw file.
//
func (m *Manager) File(name string) ([]byte, error) {
	a := File(name)
	data, err := m.get(a)
	if err != nil {
		return nil, err
	}
	if b, ok := data.(file); ok {
		return b, nil
	}
	return nil, errors.Errorf("%s is not a raw file", a)
}
