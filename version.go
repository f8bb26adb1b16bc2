package puffin

// Version is the interpreter version reported by the CLI.
const Version = "0.2.0"
