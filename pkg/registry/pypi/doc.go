// Package pypi fetches long descriptions from the PyPI JSON API.
package pypi
