package convert

import "errors"

var (
	// ErrConversion indicates the input could not be converted.
	ErrConversion = errors.New("convert: conversion failed")

	// ErrStaging indicates the input could not be staged for the extractor.
	ErrStaging = errors.New("convert: staging failed")
)
