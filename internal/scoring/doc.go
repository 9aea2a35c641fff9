// Package scoring turns issues into penalty points and a 0-100 score.
//
// A Policy assigns each issue type a weight per occurrence and a cap per
// file. Policies are values: the built-in profiles and any loaded from
// YAML are constructed once and handed to the review engine, which never
// mutates them.
package scoring
