package main

var (
	NewLogger = newLogger
	RunRender = runRender
)
