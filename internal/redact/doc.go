// Package redact masks credentials in patch text before it is shown in a
// report or posted as a pull request comment.
//
// Assignments whose name contains a credential keyword keep the name and
// lose the value. Values with a recognisable shape (cloud access keys,
// hosting tokens, JWTs, private key headers) are masked wherever they
// appear. Files matching a path policy are hidden completely.
package redact
