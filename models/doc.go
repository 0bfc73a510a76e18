// Copyright (c) 2025 Fahry Jean.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the data contract every Mapso page agrees on.

# Domain Types

  - TurnStatus: turn number, phase, submission counts, close time
  - Faction: stable id plus display name
  - SubmissionPayload: event response, improvement, campaign sub-records
  - Submission: payload with faction id and backend timestamps
  - Resolution: admin-authored per-faction outcome for a turn
  - TurnLogEntry: public audit row (turn, faction, resolution)

# Request Types

  - SubmitOrdersRequest: raw submission form fields plus passcode
  - SaveResolutionRequest: faction id plus resolution
  - SkirmishRequest: faction id plus threat value

# Response Types

  - SubmitOrdersResponse: message plus refreshed turn status
  - ValidationErrorResponse: ordered list of violated rules
  - AdminSubmissionsResponse / AdminResolutionsResponse / TurnLogResponse
  - ErrorResponse: error, message

# Constants

Turn phases:

	PhaseOpen     = "OPEN"
	PhaseLocked   = "LOCKED"
	PhaseResolved = "RESOLVED"

Improvement result categories:

	ImprovementSuccess = "success"
	ImprovementPartial = "partial"
	ImprovementFailure = "failure"

# Payload Invariant

A SubmissionPayload sub-record is either nil or has every required field
non-empty. The submission package enforces this when building payloads and
the backend rejects payloads that break it.
*/
package models
