// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

//go:build debug
// +build debug

package decido

// debugBuild is a build-tag constant: when true the
// engine checks internal consistency assertions (work-stack underflow) and
// keeps the extra unicity
// table / cache counters exposed through Statistics.
const debugBuild = true
