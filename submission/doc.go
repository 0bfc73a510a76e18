// Copyright (c) 2025 Fahry Jean.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package submission builds and validates per-turn order payloads.

# Build

Build assembles the three-part payload from the six raw form fields,
trimming whitespace and dropping sub-records whose fields are all empty:

	payload := submission.Build(submission.Fields{
		EventID:     " ev1 ",
		EventChoice: "a",
		...
	})

# Validate

Validate collects every violated rule, in order, without short-circuiting:

	errs := submission.Validate(payload)
	if len(errs) > 0 {
		// block submission, show all messages
	}

Rules:

  - event response present with event_id and choice
  - improvement present with settlement_id and building
  - campaign, if present, has a target settlement

# Derived Display

Checklist counts fully populated sub-records (0-3). ImprovementChance is
"50%" when a campaign is chosen and "100%" otherwise. Latest collapses a
newest-first submission list to one entry per faction.
*/
package submission
