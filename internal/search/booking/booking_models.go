package booking

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type location struct {
	DestID   flexString `json:"dest_id"`
	DestType string     `json:"dest_type"`
	Label    string     `json:"label"`
	Name     string     `json:"name"`
}

type searchResponse struct {
	Result []hotel `json:"result"`
}

type hotel struct {
	HotelName         string         `json:"hotel_name"`
	MinTotalPrice     *flexFloat     `json:"min_total_price"`
	PriceBreakdown    priceBreakdown `json:"price_breakdown"`
	CurrencyCode      string         `json:"currencycode"`
	Address           string         `json:"address"`
	City              string         `json:"city"`
	ReviewScore       *flexFloat     `json:"review_score"`
	URL               string         `json:"url"`
	IsFreeCancellable flexBool       `json:"is_free_cancellable"`
	HotelFacilities   string         `json:"hotel_facilities"`
}

type priceBreakdown struct {
	GrossPrice *flexFloat `json:"gross_price"`
	Currency   string     `json:"currency"`
}

// flexString accepts both JSON strings and numbers.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("unexpected value for string field: %s", data)
	}
	*f = flexString(n.String())
	return nil
}

// flexFloat accepts JSON numbers and numeric strings.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("unexpected value for number field: %s", data)
		}
		*f = flexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

// flexBool accepts JSON booleans as well as 0/1, which is what the provider
// uses for most of its flags.
type flexBool bool

func (f *flexBool) UnmarshalJSON(data []byte) error {
	switch strings.Trim(string(bytes.TrimSpace(data)), `"`) {
	case "true", "1":
		*f = true
	case "false", "0", "", "null":
		*f = false
	default:
		return fmt.Errorf("unexpected value for bool field: %s", data)
	}
	return nil
}

// pricePerNight divides the total price of the stay by nights.
func (h hotel) pricePerNight(nights int) *float64 {
	if nights < 1 {
		nights = 1
	}
	var total float64
	switch {
	case h.MinTotalPrice != nil:
		total = float64(*h.MinTotalPrice)
	case h.PriceBreakdown.GrossPrice != nil:
		total = float64(*h.PriceBreakdown.GrossPrice)
	default:
		return nil
	}
	p := total / float64(nights)
	return &p
}

func (h hotel) rating() *float64 {
	if h.ReviewScore == nil {
		return nil
	}
	r := float64(*h.ReviewScore)
	return &r
}

func (h hotel) currency(fallback string) string {
	if h.PriceBreakdown.Currency != "" {
		return h.PriceBreakdown.Currency
	}
	if h.CurrencyCode != "" {
		return h.CurrencyCode
	}
	return fallback
}

func (h hotel) amenities() []string {
	var ret []string
	for _, f := range strings.Split(h.HotelFacilities, ",") {
		f = strings.TrimSpace(f)
		if f != "" {
			ret = append(ret, f)
		}
	}
	return ret
}
