// internal/output/common.go
package output

// TSVHeader is the canonical header row for the flat tsv format.
// Keep this as the single source of truth; all writers should use it.
const TSVHeader = "sequence_id\tindex\tthreshold\tdomain\tfrom\tto\tlength\tmax\tmean"

// CSVHeader matches the downstream analysis tooling's expected column set.
const CSVHeader = "sequence_name,threshold,domain_number,start,end,length,max_probability"
