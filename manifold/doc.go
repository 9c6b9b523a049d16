// SPDX-License-Identifier: MIT

// Package manifold is the registry the tensor engine works against: a
// differentiable manifold of fixed dimension with an atlas of charts, a set
// of vector frames, coordinate changes between charts and change-of-frame
// matrices between frames.
//
// Charts and frames:
//   - AddChart registers a chart and its coordinate frame. The coordinate
//     frame carries the chart's name, so "polar" names both.
//   - AddFrame and NewFrame register non-coordinate frames.
//   - The first chart (frame) defined is the default until SetDefaultChart
//     (SetDefaultFrame) says otherwise.
//
// Changes:
//   - AddCoordChange stores the coordinates of one chart as expressions in
//     another and registers the Jacobian frame change in both directions.
//   - AddFrameChange stores e_j(to) = Σ_i P[i][j] e_i(from), expressed in a
//     chart, together with its inverse.
//   - FramePath finds the shortest chain of registered frame changes (BFS);
//     ChangeMatrix composes the matrices along it.
//
// Indices seen by users run over [StartIndex, StartIndex+Dim).
//
// A Manifold is not safe for concurrent mutation.
package manifold
