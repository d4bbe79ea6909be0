// Package main provides the entry point for the greenscan CLI.
//
// greenscan audits the sustainability posture of a website: it crawls a
// bounded set of pages, looks for CSR and carbon accounting content,
// and estimates the site's carbon footprint from its page weight.
//
// Usage:
//
//	greenscan scan <url>
//	greenscan scan --views 50000 <url> <url>
//
// See --help for all available options.
package main

// main is the entry point for greenscan.
func main() {
	Execute()
}
