// Package rubygems fetches gem metadata from the RubyGems API and renders
// it as markdown documentation.
package rubygems
