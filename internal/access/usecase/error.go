package usecase

import (
	"errors"

	"github.com/Rishu9835/DOORWISE/internal/access/entity"
	"github.com/Rishu9835/DOORWISE/internal/pkg/goerror"
)

func rosterError(err error) error {
	return goerror.NewServer(errors.Join(entity.ErrRoster, err))
}

func deliveryError(err error) error {
	return goerror.NewServer(errors.Join(entity.ErrDelivery, err))
}

// otpError maps a store verification failure to a 400 carrying the reason.
func otpError(err error) error {
	reason, ok := entity.OTPReason(err)
	if !ok {
		return goerror.NewServer(err)
	}

	msg := "Invalid OTP"
	switch reason {
	case entity.ReasonNotFound:
		msg = "No active OTP, request a new one"
	case entity.ReasonExpired:
		msg = "OTP has expired"
	case entity.ReasonMismatch:
		msg = "Wrong OTP"
	}

	return goerror.NewBusinessWrap(err, msg, goerror.CodeBadRequest, "reason", string(reason))
}
