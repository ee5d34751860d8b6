package model

import "errors"

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrUpstreamUnavailable = errors.New("upstream api unavailable")
	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionExpired      = errors.New("session expired")
)
