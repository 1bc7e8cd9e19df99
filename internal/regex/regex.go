package regex

import "regexp"

var (
	// JSON fence markers a model wraps its answer in. The alternation is
	// leftmost-first so "```json" is consumed whole before "```" is tried.
	JSONFence = regexp.MustCompile("```json|```")

	// Bearer credential in an Authorization header.
	BearerToken = regexp.MustCompile(`^Bearer\s+(\S+)$`)

	// owner/name repository reference accepted by the CLI.
	RepoSlug = regexp.MustCompile(`^([A-Za-z0-9](?:[A-Za-z0-9-]{0,38}))/([A-Za-z0-9._-]+)$`)

	// GitHub login without the leading @.
	GitHubHandle = regexp.MustCompile(`^@?([A-Za-z0-9](?:[A-Za-z0-9-]{0,38}))$`)

	// Runs of whitespace collapsed when rendering one-line previews.
	Whitespace = regexp.MustCompile(`\s+`)
)
