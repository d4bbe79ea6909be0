// Package config provides configuration structures and utilities for greenscan.
// It defines crawl settings, the three keyword taxonomies used for scoring,
// the carbon model constants, and report generation preferences.
package config
