// Package pipeline feeds FASTA records through the forward-backward engine
// and the domain decoder, fanning work across a bounded worker pool while
// keeping per-sequence failures recoverable.
package pipeline
