// SPDX-License-Identifier: MIT

// Package tensor stores tensor fields on a manifold.Manifold frame by frame
// and implements the generic algebra the curvature engine invokes.
//
// Storage (Components):
//   - one storage per (field, frame), holding chart → component entries;
//   - a Symmetry strategy maps every index tuple to its canonical
//     representative plus a sign, so fully (anti)symmetric storages keep one
//     entry per unordered index set;
//   - antisymmetric repeated indices read as exact zero without lookup.
//
// Fields (Field):
//   - Comp(frame) returns the cached storage or derives it through the
//     shortest chain of registered frame changes;
//   - SetComp and every Set on a storage fire the field's mutation hook,
//     derived representations never do;
//   - Raise, Lower, Symmetrize, Antisymmetrize, Add, Sub, Scale, Product and
//     Contract are pure functions returning new fields.
//
// Slots are 0-based positions over all indices, contravariant slots first.
// Index values seen by callers run over [StartIndex, StartIndex+Dim).
package tensor
