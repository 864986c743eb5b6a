package domain

import "errors"

var (
	ErrEmptyResult            = errors.New("no result lines could be parsed from generator output")
	ErrNoMatchingDues         = errors.New("no matching dues found")
	ErrGeneratorUnavailable   = errors.New("generative text service unavailable")
	ErrRulesUnavailable       = errors.New("tariff rules are unavailable")
	ErrRulesNotFound          = errors.New("tariff rules not found")
	ErrTariffDocumentNotFound = errors.New("tariff document not found")
	ErrInvalidVesselInfo      = errors.New("vessel info is required")
	ErrUnsupportedStore       = errors.New("unsupported rules store backend")
	ErrObjectNotFound         = errors.New("object not found in storage")
)
