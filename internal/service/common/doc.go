// Package common holds helpers shared by several services.
//
// It guards the controller against a second instance fighting over the same
// indicator and stepper outputs.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
