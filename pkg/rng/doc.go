// Package rng provides deterministic random number generation for the
// wave-function-collapse solver.
//
// # Overview
//
// The RNG type ensures reproducible generation by deriving stage-specific
// seeds from a master seed. This lets independent concerns of a single solve
// (weighted collapse, retry reseeding) draw from independent sequences while
// the overall run remains deterministic under a fixed seed.
//
// # Sub-Seed Derivation
//
// Each RNG derives its seed using SHA-256:
//
//	seed_stage = H(masterSeed, stageName, configHash)
//
// where:
//   - masterSeed: Top-level seed for the solve (or a non-deterministic
//     fallback recorded into the progress stream)
//   - stageName: identifies the concern (e.g. "solve", "compile")
//   - configHash: hash of the compiled configuration, so a rule/tile change
//     perturbs the sequence even under the same masterSeed
//
// This ensures:
//  1. Same inputs always produce same RNG sequence (determinism)
//  2. Different concerns get independent random sequences (isolation)
//  3. Configuration changes result in different sequences (sensitivity)
//
// # Usage
//
//	configHash := sha256.Sum256([]byte(compiledConfigFingerprint))
//	solveRNG := rng.NewRNG(masterSeed, "solve", configHash[:])
//
//	state := solveRNG.WeightedChoice(weights)
//	if state < 0 {
//	    // all weights were zero; caller falls back to uniform choice
//	}
//
// # Retry Reseeding
//
// On contradiction, the solver restarts with a reseeded RNG derived from
// `seed ⊕ attempt` via ForAttempt, rather than deriving a brand-new master
// seed — each attempt's sequence stays a pure function of (seed, attempt).
//
// # Thread Safety
//
// RNG instances are NOT thread-safe. The solver runs on a single logical
// worker and owns one RNG at a time; concurrent generations use independent
// RNG instances.
package rng
