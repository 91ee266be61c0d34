// Package types contains the shared types and interfaces of the pullsub
// library.
//
// It is a leaf package: it depends on nothing inside the module, which lets
// internal packages use these definitions without importing the root pullsub
// package. The root package re-exports the commonly used names via type
// aliases for convenience.
package types
