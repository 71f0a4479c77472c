package content

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// queryResponse mirrors the envelope returned by the query endpoint.
type queryResponse struct {
	Query  string          `json:"query"`
	Result json.RawMessage `json:"result"`
	Ms     int             `json:"ms"`
}

type errorResponse struct {
	Error struct {
		Description string `json:"description"`
		Type        string `json:"type"`
	} `json:"error"`
}

// ProductDoc mirrors the product projection. Optional fields decode
// leniently: a value of the wrong shape reads as absent instead of failing
// the whole result.
type ProductDoc struct {
	ID                   string       `json:"_id"`
	Title                Text         `json:"title"`
	Price                Scalar       `json:"price"`
	PriceWithoutDiscount Scalar       `json:"priceWithoutDiscount"`
	Category             *CategoryRef `json:"category"`
	Tags                 Strings      `json:"tags"`
	Badge                Text         `json:"badge"`
	ImageURL             Text         `json:"imageUrl"`
	Description          Text         `json:"description"`
	Inventory            Scalar       `json:"inventory"`
}

// CategoryRef is the dereferenced category of a product.
type CategoryRef struct {
	ID    Text `json:"_id"`
	Title Text `json:"title"`
}

// UnmarshalJSON leaves the ref zero for anything but an object, such as an
// undereferenced id string.
func (r *CategoryRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		*r = CategoryRef{}
		return nil
	}
	type plain CategoryRef
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = CategoryRef(v)
	return nil
}

// CategoryDoc mirrors the category projection.
type CategoryDoc struct {
	ID           string `json:"_id"`
	Title        Text   `json:"title"`
	ImageURL     Text   `json:"imageUrl"`
	ProductCount Scalar `json:"productCount"`
}

// Scalar holds a JSON number or string verbatim. Authors store prices as
// either, so decoding never fails on the value itself; interpretation is
// left to the caller.
type Scalar string

// UnmarshalJSON accepts numbers, strings, booleans and null.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")):
		*s = ""
	case data[0] == '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Scalar(strings.TrimSpace(str))
	case data[0] == '{' || data[0] == '[':
		// Objects and arrays are not scalars; treat them as absent.
		*s = ""
	default:
		*s = Scalar(data)
	}
	return nil
}

// String returns the raw text.
func (s Scalar) String() string {
	return string(s)
}

// IsZero reports whether the value was absent or null.
func (s Scalar) IsZero() bool {
	return s == ""
}

// Int parses the value as a whole number. ok is false when the value is
// absent or not an integer.
func (s Scalar) Int() (n int, ok bool) {
	if s.IsZero() {
		return 0, false
	}
	n, err := strconv.Atoi(string(s))
	if err != nil {
		return 0, false
	}
	return n, true
}

// Text is a string field that reads any non-string JSON value as empty.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '"' {
		*t = ""
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = Text(str)
	return nil
}

// String returns the text untrimmed.
func (t Text) String() string {
	return string(t)
}

// Strings is a string list that keeps only the string elements of a JSON
// array. Any other value reads as an empty list.
type Strings []string

func (s *Strings) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		*s = nil
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Strings, 0, len(raw))
	for _, elem := range raw {
		var str string
		if json.Unmarshal(elem, &str) == nil {
			out = append(out, str)
		}
	}
	*s = out
	return nil
}
