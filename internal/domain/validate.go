package domain

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks every comment for the fields selection and rendering rely on
func (c Collection) Validate() error {
	for i := range c {
		if err := validate.Struct(&c[i]); err != nil {
			return fmt.Errorf("comment %d: %w", i, err)
		}
	}
	return nil
}

// DecodeCollection parses a JSON array of comments and validates it.
func DecodeCollection(data []byte) (Collection, error) {
	var c Collection
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	if c == nil {
		return nil, errors.New("expected a JSON array of comments")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
