// Copyright (c) 2025 Fahry Jean.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package skirmish

import (
	"errors"
	"math/rand"
)

// ErrInvalidThreat indicates the threat value is not positive. No roll is
// performed when it is returned.
var ErrInvalidThreat = errors.New("threat must be greater than zero")

// Economic thresholds that modify the dice.
const (
	// GoldTrainingThreshold: above this much gold the training die is
	// clamped up to TrainedFloor.
	GoldTrainingThreshold = 1000

	// LeviesFloorThreshold: at or above this many levies the manpower die
	// is clamped up to TrainedFloor.
	LeviesFloorThreshold = 200

	// TrainedFloor is the minimum die value granted by the clamps above.
	TrainedFloor = 3
)

// Manpower advantage rule for levies above LeviesFloorThreshold: roll the
// manpower die twice and keep the higher. Earlier revisions of the game used
// "+1 capped at 6" instead; which rule is canonical is awaiting product
// confirmation, so the choice lives in this one constant.
const ManpowerAdvantageRollsTwice = true

// Request describes a skirmish roll.
//
// Resolve is deterministic with respect to Seed: the same Seed, Gold, Levies
// and Threat always produce the same Result.
type Request struct {
	Gold   int
	Levies int
	Threat int
	Seed   int64
}

// Result captures the three dice after modifiers, their product, and the
// outcome. Nothing is persisted; the caller applies any narrative
// consequence manually.
type Result struct {
	Training int  `json:"training"`
	Manpower int  `json:"manpower"`
	Surprise int  `json:"surprise"`
	Total    int  `json:"total"`
	Threat   int  `json:"threat"`
	Success  bool `json:"success"`
}

// Resolve rolls a skirmish.
//
// Dice are drawn in a fixed order (training, manpower, advantage manpower
// when applicable, surprise) so results are reproducible from the seed.
//
//  1. training: d6; floor TrainedFloor when Gold > GoldTrainingThreshold
//  2. manpower: d6; rolled twice take higher when Levies > LeviesFloorThreshold;
//     floor TrainedFloor when Levies >= LeviesFloorThreshold
//  3. surprise: d6, unmodified
//  4. success iff training*manpower*surprise >= Threat
func Resolve(req Request) (Result, error) {
	if req.Threat <= 0 {
		return Result{}, ErrInvalidThreat
	}

	rng := rand.New(rand.NewSource(req.Seed))

	training := rollDie(rng)
	if req.Gold > GoldTrainingThreshold && training < TrainedFloor {
		training = TrainedFloor
	}

	manpower := rollDie(rng)
	if ManpowerAdvantageRollsTwice && req.Levies > LeviesFloorThreshold {
		if second := rollDie(rng); second > manpower {
			manpower = second
		}
	}
	if req.Levies >= LeviesFloorThreshold && manpower < TrainedFloor {
		manpower = TrainedFloor
	}

	surprise := rollDie(rng)

	total, success := Outcome(training, manpower, surprise, req.Threat)
	return Result{
		Training: training,
		Manpower: manpower,
		Surprise: surprise,
		Total:    total,
		Threat:   req.Threat,
		Success:  success,
	}, nil
}

// Outcome evaluates the success rule for already-drawn dice.
func Outcome(training, manpower, surprise, threat int) (total int, success bool) {
	total = training * manpower * surprise
	return total, total >= threat
}

func rollDie(rng *rand.Rand) int {
	return rng.Intn(6) + 1
}
