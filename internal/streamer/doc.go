// Package streamer relays a generation token stream to a sink in
// coalesced snapshots, guaranteeing a final flush with the complete
// answer and replacing partial output with an error notice on failure.
package streamer
