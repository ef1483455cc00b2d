// Package main hosts the mdpage CLI entrypoint and command graph.
//
// Running mdpage with no subcommand converts the configured Markdown file (or
// the path given as the only argument) into an HTML page next to it and prints
// a single status line. The Cobra tree also exposes inspect, which reports what
// a conversion would produce, and config utilities for scaffolding and
// checking the TOML configuration.
//
// Keep this package lean: conversion behaviour lives in internal/converter and
// the commands here only resolve configuration, flags, and output.
package main
