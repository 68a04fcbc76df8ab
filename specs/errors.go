package specs

import (
	"github.com/pkg/errors"

	"github.com/ddreconf/reconf/internal/dderr"
)

var errUnsupportedKind = errors.Wrap(dderr.ErrUnsupportedConfiguration, "VariableConditionSpec: NotAll is not implemented")
