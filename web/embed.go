package web

import "embed"

// FS contains the embedded static assets, including the asset manifest.
// The patterns are relative to this file's directory.
//
//go:embed static/*
var FS embed.FS
