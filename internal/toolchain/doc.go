// Package toolchain wraps the external programs a build delegates to: git,
// cmake and the vcpkg package manager. Every program is a domain.Tool backed
// by a domain.Runner, so tests can replace process execution with a mock.
package toolchain
