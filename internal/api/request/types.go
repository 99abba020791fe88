package request

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/mcoot/gamevault/internal/model"
)

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks both fields are present
func (r LoginRequest) Validate() error {
	if r.Username == "" || r.Password == "" {
		return model.NewValidationError("username and password", "are required")
	}
	return nil
}

// CreateGameRequest is the request body for creating a custom game
type CreateGameRequest struct {
	Name            string   `json:"name"`
	Released        string   `json:"released,omitempty"`
	Rating          Number   `json:"rating"`
	Description     string   `json:"description,omitempty"`
	BackgroundImage string   `json:"background_image,omitempty"`
}

// ToModel converts the request to domain input. Released accepts a date or an RFC 3339 timestamp.
func (r CreateGameRequest) ToModel() (model.NewCustomGame, error) {
	input := model.NewCustomGame{
		Name:            strings.TrimSpace(r.Name),
		Rating:          r.Rating.ptr(),
		Description:     r.Description,
		BackgroundImage: r.BackgroundImage,
	}

	if r.Released != "" {
		released, err := parseDate(r.Released)
		if err != nil {
			return model.NewCustomGame{}, model.NewValidationError("released", "must be a date like 2025-12-05")
		}
		input.Released = &released
	}

	return input, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(model.DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// Number is an optional rating that accepts a JSON number or a numeric string.
// HTML form fields arrive as strings. Null and "" leave it unset.
type Number struct {
	Value float64
	Set   bool
}

// NewNumber returns a Number holding v
func NewNumber(v float64) Number {
	return Number{Value: v, Set: true}
}

var errNotNumber = errors.New("must be a number")

// UnmarshalJSON implements json.Unmarshaler
func (n *Number) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var v float64
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return errNotNumber
		}
		v = parsed
	} else if err := json.Unmarshal(data, &v); err != nil {
		return errNotNumber
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errNotNumber
	}
	n.Value, n.Set = v, true
	return nil
}

func (n Number) ptr() *float64 {
	if !n.Set {
		return nil
	}
	v := n.Value
	return &v
}
