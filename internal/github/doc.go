// Package github is a minimal GitHub REST API client for scoring pull
// requests.
//
// It fetches a pull request's title, body and per-file patches, and posts
// the rendered report back as an issue comment. GITHUB_TOKEN is optional
// for public repositories; GITHUB_API_URL selects an Enterprise server.
package github
