package gamesave

import (
	"sort"

	apperrors "github.com/louisbranch/pkmnkit/internal/platform/errors"
)

// extraAttr is a numeric save value outside the core model, such as casino
// coins. put writes a new value into the encoded save; read-only values have
// none.
type extraAttr struct {
	value    int
	orig     int
	min, max int
	put      func(out []byte, v int) error
}

func (s *Save) addAttr(name string, value, min, max int, put func(out []byte, v int) error) {
	s.attrs[name] = &extraAttr{value: value, orig: value, min: min, max: max, put: put}
}

func (s *Save) addPokedexAttrs() {
	s.addAttr("pokedex_seen", s.pokedex.NumSeen(), 0, s.pokedex.Size(), nil)
	s.addAttr("pokedex_caught", s.pokedex.NumCaught(), 0, s.pokedex.Size(), nil)
}

// encodeAttrs writes the attributes changed since load.
func (s *Save) encodeAttrs(out []byte) error {
	for _, name := range s.AttributeNames() {
		a := s.attrs[name]
		if a.put == nil || a.value == a.orig {
			continue
		}
		if err := a.put(out, a.value); err != nil {
			return err
		}
	}
	return nil
}

// AttributeNames lists the numeric attributes of the save, sorted.
func (s *Save) AttributeNames() []string {
	names := make([]string, 0, len(s.attrs))
	for name := range s.attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NumericAttribute returns the value of a numeric attribute.
func (s *Save) NumericAttribute(name string) (int, error) {
	a, ok := s.attrs[name]
	if !ok {
		return 0, apperrors.Unsupported(name, string(s.game))
	}
	return a.value, nil
}

// SetNumericAttribute changes a numeric attribute.
func (s *Save) SetNumericAttribute(name string, v int) error {
	a, ok := s.attrs[name]
	if !ok {
		return apperrors.Unsupported(name, string(s.game))
	}
	if a.put == nil {
		return apperrors.WithMetadata(apperrors.CodeInvalidArgument, "attribute is read-only",
			map[string]string{"Attribute": name})
	}
	if v < a.min || v > a.max {
		return apperrors.OutOfRange(name, a.min, a.max)
	}
	a.value = v
	return nil
}
