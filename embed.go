package worksite

import "embed"

// EmbeddedAssets contains static assets shipped with the binary: the Work
// page stylesheet.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS

const stylesheetPath = "/public/work.css"
