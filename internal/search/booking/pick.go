package booking

import (
	"fmt"
	"strings"

	"github.com/baalimago/hotelagent/internal/search"
)

const (
	CityFirst = "city-first"
	First     = "first"
)

// Picker selects one destination out of the candidates returned by a location
// lookup. The bool is false when nothing could be picked.
type Picker func(candidates []search.Destination) (search.Destination, bool)

// PickCityFirst picks the first destination typed "city", and falls back to the
// first candidate if there is none.
func PickCityFirst(candidates []search.Destination) (search.Destination, bool) {
	if len(candidates) == 0 {
		return search.Destination{}, false
	}
	for _, c := range candidates {
		if strings.EqualFold(c.Type, "city") {
			return c, true
		}
	}
	return candidates[0], true
}

// PickFirst picks the first candidate regardless of its type.
func PickFirst(candidates []search.Destination) (search.Destination, bool) {
	if len(candidates) == 0 {
		return search.Destination{}, false
	}
	return candidates[0], true
}

func PickerFor(name string) (Picker, error) {
	switch name {
	case CityFirst, "":
		return PickCityFirst, nil
	case First:
		return PickFirst, nil
	default:
		return nil, fmt.Errorf("unknown destination resolution: '%v', expected one of: [%v, %v]", name, CityFirst, First)
	}
}
