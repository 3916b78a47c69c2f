package domain

import "errors"

var ErrSessionMalformed = errors.New("stored session is malformed")
var ErrNoSession = errors.New("no active session")
var ErrUnknownRole = errors.New("unknown login role")
var ErrInvalidCredentials = errors.New("email and password are required")
var ErrEmptyPrescription = errors.New("please add at least one medicine")
