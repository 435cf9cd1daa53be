// Package cli provides the interactive CipherVault command-line client.
//
// It wires configuration, the local record index, the IPFS storage client,
// the upload pipeline and the replica health monitor into an interactive
// REPL. Typical flow: open a vault session with a wallet identity, queue and
// process uploads, browse and organize records, and check replica health.
//
// Key features:
//   - Open / Close a vault session (key material derived on demand)
//   - Upload files through the staged encrypt-then-upload pipeline
//   - List / star / trash / restore / organize records into folders
//   - Download and decrypt stored files
//   - Export and import encrypted index snapshots
//   - Probe and heal replica health per record
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
