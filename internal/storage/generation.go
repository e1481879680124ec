package storage

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	ErrGenerationNotFound = errors.New("generation not found")
)

// Generation is written once by the generate handler and only read afterwards.
type Generation struct {
	ID        string    `json:"id" bson:"_id"`
	UserEmail *string   `json:"user_email" bson:"user_email"`
	InputURL  string    `json:"input_url" bson:"input_url"`
	Outputs   Outputs   `json:"outputs" bson:"outputs"`
	Style     string    `json:"style" bson:"style"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Outputs is stored as a JSON array of strings in SQL columns.
type Outputs []string

func (o Outputs) Value() (driver.Value, error) {
	if o == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(o))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (o *Outputs) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	case nil:
		*o = Outputs{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Outputs", src)
	}

	var urls []string
	if err := json.Unmarshal(data, &urls); err != nil {
		return fmt.Errorf("failed to decode outputs: %w", err)
	}
	*o = urls
	return nil
}
