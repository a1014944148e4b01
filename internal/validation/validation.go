// Package validation checks registration and login payloads before any side
// effect. Invalid input is reported as a field to message map, never as an
// error return.
//
// Each field keeps a single message. When several checks fail on one field
// the presence message wins for name and email and the length message wins
// for password.
package validation

import (
	"errors"

	ozzo "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const (
	MsgNameLength     = "Name must be between 2 and 30 characters."
	MsgNameRequired   = "Name field is required."
	MsgEmailInvalid   = "Email is invalid."
	MsgEmailRequired  = "Email is required."
	MsgPasswordLength = "The password must be at least 6 characters."
	MsgPasswordNeeded = "The password is required."
)

// Errors maps a json field name to its message.
type Errors map[string]string

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func ValidateRegister(in RegisterInput) (Errors, bool) {
	err := ozzo.ValidateStruct(&in,
		ozzo.Field(&in.Name,
			ozzo.Required.Error(MsgNameRequired),
			ozzo.RuneLength(2, 30).Error(MsgNameLength),
		),
		ozzo.Field(&in.Email,
			ozzo.Required.Error(MsgEmailRequired),
			is.Email.Error(MsgEmailInvalid),
		),
		ozzo.Field(&in.Password,
			ozzo.Required.Error(MsgPasswordLength),
			ozzo.RuneLength(6, 30).Error(MsgPasswordLength),
		),
	)
	return collect(err)
}

func ValidateLogin(in LoginInput) (Errors, bool) {
	err := ozzo.ValidateStruct(&in,
		ozzo.Field(&in.Email,
			ozzo.Required.Error(MsgEmailRequired),
			is.Email.Error(MsgEmailInvalid),
		),
		ozzo.Field(&in.Password,
			ozzo.Required.Error(MsgPasswordNeeded),
		),
	)
	return collect(err)
}

func collect(err error) (Errors, bool) {
	out := Errors{}
	if err == nil {
		return out, true
	}

	var fields ozzo.Errors
	if !errors.As(err, &fields) {
		out["form"] = err.Error()
		return out, false
	}
	for field, ferr := range fields {
		out[field] = ferr.Error()
	}
	return out, len(out) == 0
}
