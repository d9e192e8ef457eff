// Package writers wires output encoders to channels so the prediction
// pipeline can hand results to a single writer goroutine.
package writers
