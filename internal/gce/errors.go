package gce

import (
	"fmt"

	"github.com/containerd/errdefs"
)

var (
	// ErrInvalidArgument is returned by NewBuilder for bad parameter values,
	// such as an unknown restart policy.
	ErrInvalidArgument = fmt.Errorf("invalid machine parameters: %w", errdefs.ErrInvalidArgument)

	// ErrTypeMismatch is returned by NewBuilder when the machine shape lacks a
	// capability the descriptor needs.
	ErrTypeMismatch = fmt.Errorf("machine shape mismatch: %w", errdefs.ErrInvalidArgument)
)
