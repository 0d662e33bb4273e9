// Package cqrs holds command handler abstractions that composed wrappers
// from package wrapcall can be applied to.
package cqrs
