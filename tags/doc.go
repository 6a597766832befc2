// Package tags parses declarative mapping rules from struct tags.
package tags
