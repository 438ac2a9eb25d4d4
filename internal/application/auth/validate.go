package auth

import (
	"github.com/go-playground/validator/v10"

	domerrors "github.com/amirhosseinghanipour/verigate/internal/domain/errors"
)

var validate = validator.New()

// checkInput runs struct-tag validation on a use-case input and classifies any
// failure as malformed input.
func checkInput(input interface{}) error {
	if err := validate.Struct(input); err != nil {
		return domerrors.Wrap(domerrors.MalformedInput, err)
	}
	return nil
}
