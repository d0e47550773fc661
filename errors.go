package main

import "errors"

var (
	ErrUnsupportedLanguage      = errors.New("unsupported language")
	ErrMissingLanguage          = errors.New("content document is missing a language")
	ErrInvalidWhatsApp          = errors.New("whatsapp number must contain digits only")
	ErrUnsupportedContentFormat = errors.New("unsupported content file format")
	ErrSMTPNotConfigured        = errors.New("SMTP credentials not configured")
)
