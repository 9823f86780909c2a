// Package service contains the application-specific use cases and business
// logic. It orchestrates the solve pipeline: variable validation, input
// safety checks, notation normalization, and delegation to the symbolic
// engine. Services receive dependencies through constructor injection and
// translate lower-level failures into domain errors the API layer can map
// to responses.
package service
