// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"

	"github.com/MKhiriev/influence-roster/internal/validators"
)

// Request decoding errors. All of them are validation failures.
var (
	ErrInvalidJSON       = fmt.Errorf("%w: invalid JSON was passed", validators.ErrValidation)
	ErrInvalidForm       = fmt.Errorf("%w: invalid form was passed", validators.ErrValidation)
	ErrMissingPhoto      = fmt.Errorf("%w: no photo was passed", validators.ErrValidation)
	ErrMissingProfileRef = fmt.Errorf("%w: profile_index or profile_id is required", validators.ErrValidation)
)
