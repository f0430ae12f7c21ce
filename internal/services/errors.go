package services

import (
	apierrors "github.com/antonKorobenko/test-task/internal/errors"
)

// Stats service errors
var (
	// ErrDatasetNotLoaded is returned by queries issued before Load succeeded
	ErrDatasetNotLoaded = apierrors.ServiceUnavailable("dataset not loaded")
)
