// Command argmap turns debate transcripts into Mermaid argument maps and
// scores how faithfully a diagram covers its transcript.
//
// Local commands (compare, check without --llm) need no credentials. Commands
// that call a model read the [llm] section of the configuration file or the
// provider's API key environment variable.
package main
