package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrLoginRequired      = errors.New("please log in or create an account to proceed")
	ErrAdminRequired      = errors.New("admin session required")
	ErrEmptyEnquiry       = errors.New("enquiry text is required")
	ErrInvalidStatus      = errors.New("invalid enquiry status")
	ErrSignupNotStarted   = errors.New("signup account step not completed")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidImage       = errors.New("please upload a valid JPG or PNG file")
	ErrImageRequired      = errors.New("please select an image file to upload")
	ErrInvalidProduct     = errors.New("name, category, vendor and price are required")
)
