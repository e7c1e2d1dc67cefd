package main

// CLIVersion is reported by `sqltask --version`.
const CLIVersion = "v0.1.0"
