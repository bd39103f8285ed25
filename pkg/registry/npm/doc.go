// Package npm fetches readme documentation from npm-compatible registries,
// honoring the registry endpoint and auth token configuration of the npm
// CLI (.npmrc, NPM_CONFIG_REGISTRY).
package npm
