// Package crates fetches rendered readmes from the crates.io API.
package crates
