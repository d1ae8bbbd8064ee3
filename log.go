// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

//go:build !debug
// +build !debug

package decido

// debugBuild is a build-tag constant: when false the
// engine skips every consistency check and unique-table counter, trading
// diagnostics for speed. Compile with the `debug` tag to flip it on.
const debugBuild = false
