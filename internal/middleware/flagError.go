package middleware

import (
	"errors"

	"github.com/MrSnakeDoc/crate/internal/errs"
	"github.com/MrSnakeDoc/crate/internal/logger"
)

// ErrLogged tells main the message has already been printed.
var ErrLogged = errors.New("already logged")

func FlagComboError(code errs.Code, a ...any) error {
	msg := errs.Msg(code, a...)
	logger.LogError("%s", msg)
	return ErrLogged
}
