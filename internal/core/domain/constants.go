package domain

import "errors"

var (
	ErrNoTopic            = errors.New("no topic found in command")
	ErrAllProvidersFailed = errors.New("all providers failed")
	ErrProviderSkipped    = errors.New("provider not available")
	ErrUnknownContentType = errors.New("unsupported content type")
	ErrEmptyResponse      = errors.New("empty response from provider")
)
