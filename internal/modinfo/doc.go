// Package modinfo discovers mod source directories in a repository and parses
// each directory's info.json into a Descriptor. Discovery is deterministic
// (children are scanned in sorted name order), directories without an
// info.json are skipped, and malformed descriptors are collected without
// halting the scan.
package modinfo
