package web

import "embed"

// FS contains all embedded web assets, including static files.
// The patterns are relative to this file's directory (the 'web' directory).
//
//go:embed static/*
var FS embed.FS

// ContentFS holds the course section files shipped with the binary. Section
// files live one directory per course under content/.
//
//go:embed content
var ContentFS embed.FS
