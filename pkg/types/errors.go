package types

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrNGONotFound         = errors.New("ngo not found")
	ErrDonationNotFound    = errors.New("donation not found")
	ErrInventoryNotFound   = errors.New("inventory item not found")
	ErrApplicationNotFound = errors.New("volunteer application not found")
	ErrAlertNotFound       = errors.New("alert not found")

	ErrEmailTaken     = errors.New("user with this email already exists")
	ErrAlreadyApplied = errors.New("already applied to volunteer for this ngo")
)
