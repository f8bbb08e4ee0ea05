package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// DocID is a document identifier that decodes from either a BSON ObjectID or
// a plain string. It always renders as the hex/string form so identifiers
// compare stably across collections and stage files.
type DocID string

func (id DocID) String() string { return string(id) }

// IsZero reports whether the identifier is missing or a serialized null.
func (id DocID) IsZero() bool { return id == "" || id == "None" }

func (id *DocID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bson.TypeObjectID:
		if oid, ok := rv.ObjectIDOK(); ok {
			*id = DocID(oid.Hex())
		}
	case bson.TypeString:
		if s, ok := rv.StringValueOK(); ok {
			*id = DocID(s)
		}
	case bson.TypeNull:
		*id = ""
	}
	return nil
}

// Timestamp holds a date as its ISO 8601 wire form. Source documents carry
// dates as either BSON datetimes or ISO strings; both normalize to the string
// representation so prefix slicing (registration year, cohort month) works
// uniformly.
type Timestamp string

const isoMillis = "2006-01-02T15:04:05.000Z07:00"

func (ts Timestamp) String() string { return string(ts) }

func (ts Timestamp) IsZero() bool { return ts == "" }

// Time parses the timestamp, accepting RFC 3339 with or without fractional
// seconds and zone-less forms (treated as UTC). The second return is false
// when the value is missing or unparseable.
func (ts Timestamp) Time() (time.Time, bool) {
	return ParseISODate(string(ts))
}

func (ts *Timestamp) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bson.TypeDateTime:
		*ts = Timestamp(rv.Time().UTC().Format(isoMillis))
	case bson.TypeString:
		if s, ok := rv.StringValueOK(); ok {
			*ts = Timestamp(s)
		}
	case bson.TypeNull:
		*ts = ""
	}
	return nil
}

// ParseISODate parses an ISO 8601 date string into UTC. Zone-less values are
// assumed UTC. Returns false for empty or unparseable input.
func ParseISODate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05.000",
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// Price is an order amount that decodes from either a bare number or an
// embedded document of the form {"total": n}. Any other shape contributes
// zero rather than failing the decode.
type Price float64

func (p *Price) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*p = Price(n)
		return nil
	}
	var doc struct {
		Total float64 `json:"total"`
	}
	if err := json.Unmarshal(data, &doc); err == nil {
		*p = Price(doc.Total)
		return nil
	}
	*p = 0
	return nil
}

func (p *Price) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bson.TypeDouble:
		if f, ok := rv.DoubleOK(); ok {
			*p = Price(f)
		}
	case bson.TypeInt32:
		if n, ok := rv.Int32OK(); ok {
			*p = Price(n)
		}
	case bson.TypeInt64:
		if n, ok := rv.Int64OK(); ok {
			*p = Price(n)
		}
	case bson.TypeEmbeddedDocument:
		if doc, ok := rv.DocumentOK(); ok {
			total := doc.Lookup("total")
			switch total.Type {
			case bson.TypeDouble:
				if f, ok := total.DoubleOK(); ok {
					*p = Price(f)
				}
			case bson.TypeInt32:
				if n, ok := total.Int32OK(); ok {
					*p = Price(n)
				}
			case bson.TypeInt64:
				if n, ok := total.Int64OK(); ok {
					*p = Price(n)
				}
			}
		}
	default:
		*p = 0
	}
	return nil
}
