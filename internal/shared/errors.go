package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Storage errors
	ErrStorageUnavailable = fmt.Errorf("storage unavailable")
	ErrConflict           = fmt.Errorf("record already exists")
	ErrNotFound           = fmt.Errorf("record not found")

	// Authentication errors
	ErrEmailTaken       = fmt.Errorf("email already registered")
	ErrUserNotFound     = fmt.Errorf("user not found")
	ErrWrongPassword    = fmt.Errorf("wrong password")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrForbidden        = fmt.Errorf("admin privileges required")

	// Seeding errors
	ErrAssetUnavailable = fmt.Errorf("asset unavailable")
	ErrAssetImplausible = fmt.Errorf("asset content implausible")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
