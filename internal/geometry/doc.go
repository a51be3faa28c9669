// Package geometry owns rigid-body pose arithmetic.
//
// Responsibilities: the Pose value type, conversion between rotation
// vectors, rotation matrices and quaternions, and pose composition,
// inversion and relative pose.
//
// Convention: orientations are rotation vectors (unit axis scaled by the
// angle in radians). Rot applies Rodrigues' formula; Rot2Vec goes through a
// unit quaternion and returns angles in [0, π]. Compose(a, b) rotates b by a
// and then translates by a's position.
package geometry
